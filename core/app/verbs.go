// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"context"
	"flag"
	"strings"
)

// Verb holds information about a runnable command.
type Verb struct {
	// Name of the command.
	Name string
	// ShortHelp for the purpose of the command.
	ShortHelp string
	// ShortUsage for how to use the command.
	ShortUsage string
	// Flags is the verb's flag set; verbs register their flags on it before
	// calling AddVerb.
	Flags flag.FlagSet
	// Action runs the verb with the remaining non-flag arguments.
	Action func(ctx context.Context, args []string) error
}

type verbSet struct {
	verbs []*Verb
}

var globalVerbs verbSet

func (s *verbSet) filter(prefix string) (result []*Verb) {
	for _, v := range s.verbs {
		if strings.HasPrefix(v.Name, prefix) {
			result = append(result, v)
		}
	}
	return result
}

// AddVerb adds a new verb to the supported set, it will panic if a duplicate
// name is encountered. v is returned so the function can be used in a
// fluent style.
func AddVerb(v *Verb) *Verb {
	for _, o := range globalVerbs.verbs {
		if o.Name == v.Name {
			panic("Duplicate verb name " + v.Name)
		}
	}
	globalVerbs.verbs = append(globalVerbs.verbs, v)
	return v
}

// VerbMain is a task that can be handed to Run to invoke the verb handling
// system on the command line arguments.
func VerbMain(ctx context.Context) error {
	args := flag.Args()
	if len(args) < 1 {
		Usage(ctx, "Must supply a command to %s", Name)
		return nil
	}
	name := args[0]
	matches := globalVerbs.filter(name)
	for _, v := range matches {
		if v.Name == name {
			matches = []*Verb{v}
			break
		}
	}
	switch len(matches) {
	case 1:
		v := matches[0]
		v.Flags.Usage = func() { Usage(ctx, "Usage: %s %s %s", Name, v.Name, v.ShortUsage) }
		if err := v.Flags.Parse(args[1:]); err != nil {
			return err
		}
		return v.Action(ctx, v.Flags.Args())
	case 0:
		if name == "help" {
			Usage(ctx, "")
		} else {
			Usage(ctx, "Command '%s' is unknown", name)
		}
	default:
		Usage(ctx, "Command '%s' is ambiguous", name)
	}
	return nil
}

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

package main

import (
	"context"
	"os"

	"github.com/rdtools/matc/core/app"
	"github.com/rdtools/matc/core/log"
	"github.com/rdtools/matc/matc/material"
)

var decryptVerb = &app.Verb{
	Name:       "decrypt",
	ShortHelp:  "Rewrite an encrypted container as plaintext",
	ShortUsage: "-out <file> <container file>",
}

var decryptFlags struct {
	out string
}

func init() {
	decryptVerb.Flags.StringVar(&decryptFlags.out, "out", "", "output container file")
	decryptVerb.Action = decryptAction
	app.AddVerb(decryptVerb)
}

func decryptAction(ctx context.Context, args []string) error {
	if len(args) != 1 || decryptFlags.out == "" {
		app.Usage(ctx, "decrypt expects -out and one container file")
		return nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	m, err := material.Read(data)
	if err != nil {
		return err
	}
	if m.Encryption == material.EncryptionNone {
		log.I(ctx, "%s is not encrypted", args[0])
	}
	out, err := material.Write(m.WithEncryption(material.EncryptionNone, nil, nil))
	if err != nil {
		return err
	}
	return os.WriteFile(decryptFlags.out, out, 0666)
}

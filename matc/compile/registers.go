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

package compile

import (
	"strconv"

	"github.com/rdtools/matc/matc/material"
)

// RegisterDefines extracts the register binding defines from a base
// material: one s_<BufferName>_REG define per buffer, holding its register
// slot. The pipeline injects these between the user's defines and the
// per-shader defines.
func RegisterDefines(m *material.Material) map[string]string {
	out := make(map[string]string, len(m.Buffers))
	for i := range m.Buffers {
		b := &m.Buffers[i]
		out["s_"+b.Name+"_REG"] = strconv.Itoa(int(b.Reg1))
	}
	return out
}

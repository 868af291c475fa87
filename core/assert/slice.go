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

package assert

import (
	"fmt"
	"reflect"
)

// OnSlice is the result of calling ThatSlice on an Assertion.
type OnSlice struct {
	assertion *Assertion
	value     interface{}
}

// ThatSlice returns an OnSlice for the specified slice value.
func (a *Assertion) ThatSlice(value interface{}) OnSlice {
	return OnSlice{assertion: a, value: value}
}

// Equals asserts that the slice is element-wise equal to expect.
// A nil slice and an empty slice are considered equal.
func (o OnSlice) Equals(expect interface{}) bool {
	got := reflect.ValueOf(o.value)
	want := reflect.ValueOf(expect)
	if got.Len() != want.Len() {
		return o.assertion.
			Compare(fmt.Sprintf("length %d", got.Len()), "==", fmt.Sprintf("length %d", want.Len())).
			Test(false)
	}
	for i := 0; i < got.Len(); i++ {
		g, w := got.Index(i).Interface(), want.Index(i).Interface()
		if !reflect.DeepEqual(g, w) {
			return o.assertion.
				Compare(fmt.Sprintf("[%d] = %v", i, g), "==", fmt.Sprintf("[%d] = %v", i, w)).
				Test(false)
		}
	}
	return true
}

// IsEmpty asserts that the slice has no elements.
func (o OnSlice) IsEmpty() bool {
	n := reflect.ValueOf(o.value).Len()
	return o.assertion.Compare(fmt.Sprintf("length %d", n), "==", "empty").Test(n == 0)
}

// IsNotEmpty asserts that the slice has at least one element.
func (o OnSlice) IsNotEmpty() bool {
	n := reflect.ValueOf(o.value).Len()
	return o.assertion.Compare(fmt.Sprintf("length %d", n), "!=", "empty").Test(n > 0)
}

// IsLength asserts that the slice has exactly the given number of elements.
func (o OnSlice) IsLength(n int) bool {
	got := reflect.ValueOf(o.value).Len()
	return o.assertion.Compare(fmt.Sprintf("length %d", got), "==", fmt.Sprintf("length %d", n)).Test(got == n)
}

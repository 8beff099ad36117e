// Copyright (c) 2020 Siemens AG
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
//
// Author(s): Jonas Plum

package cmdusage

import "sort"

// An Entry is one command name with its number of occurrences across all
// sources.
type Entry struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// A FrequencyTable counts normalized command names and remembers the order
// in which distinct names first appeared.
type FrequencyTable struct {
	counts map[string]int
	order  []string
}

// NewFrequencyTable creates an empty FrequencyTable.
func NewFrequencyTable() *FrequencyTable {
	return &FrequencyTable{counts: map[string]int{}}
}

// Add counts a single normalized command name.
func (t *FrequencyTable) Add(key string) {
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// AddAll counts a sequence of normalized command names in order.
func (t *FrequencyTable) AddAll(keys []string) {
	for _, key := range keys {
		t.Add(key)
	}
}

// Len returns the number of distinct command names.
func (t *FrequencyTable) Len() int {
	return len(t.counts)
}

// Total returns the number of counted tokens.
func (t *FrequencyTable) Total() int {
	total := 0
	for _, count := range t.counts {
		total += count
	}
	return total
}

// Ranked returns the table as entries ordered by count descending. On equal
// counts the name seen first ranks first, so identical input sequences
// always produce identical rankings.
func (t *FrequencyTable) Ranked() []Entry {
	entries := make([]Entry, 0, len(t.order))
	for _, key := range t.order {
		entries = append(entries, Entry{Name: key, Count: t.counts[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

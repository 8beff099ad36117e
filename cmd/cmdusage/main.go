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

// The cmdusage command reconstructs command usage on a Linux system from
// shell history, a process snapshot, system logs and audit records.
//     analyze   Collect and rank command usage from all sources
//     create    Create an empty usage store
//     report    Inspect stored command usage reports
//
// Usage
//
// Analyze the live system and persist the result
//     cmdusage analyze --store usage.db --json command_usage.json
// Analyze a mounted image
//     cmdusage analyze --root /mnt/image
// Inspect stored reports
//     cmdusage report list usage.db
//     cmdusage report show report--16b02a2b-d1a1-4e79-aad6-2f2c1c286818 usage.db
package main

import "github.com/kll3425/cmdusage/cmd"

func main() {
	cmd.Execute()
}

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

// Package cmdusage reconstructs command usage on a Linux system by
// harvesting command names from shell history files, a process snapshot,
// system log files and audit EXECVE records, then normalizing and counting
// them into a single ranked frequency table.
//
// Sources
//
// Four independent readers feed the pipeline:
//     - Shell history files (.bash_history, .zsh_history)
//     - A process snapshot (ps aux)
//     - System log files (/var/log/syslog, /var/log/auth.log, COMMAND= entries)
//     - Audit EXECVE records (ausearch -m EXECVE)
//
// Every reader is best-effort: missing files, missing tools and unreadable
// records reduce that reader's contribution, they never abort the run. The
// combined tokens are lowercased, tokens containing anything but letters
// are dropped, and the remainder is counted. The resulting ranking is
// deterministic: counts descending, ties broken by first appearance.
//
// The pipeline can run against the live system or against an offline
// mounted disk image by setting a root prefix under which all file paths
// are resolved.
package cmdusage

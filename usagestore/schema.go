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

package usagestore

// reportSchema describes a stored command usage report record.
const reportSchema = `{
	"$id": "command-usage-report",
	"type": "object",
	"required": ["id", "type", "collected_time"],
	"properties": {
		"id": {
			"type": "string",
			"pattern": "^report--"
		},
		"type": {
			"type": "string",
			"enum": ["command_usage"]
		},
		"collected_time": {
			"type": "string"
		},
		"root_prefix": {
			"type": "string"
		},
		"token_count": {
			"type": "integer",
			"minimum": 0
		},
		"entries": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name", "count"],
				"properties": {
					"name": {
						"type": "string",
						"pattern": "^[a-z]+$"
					},
					"count": {
						"type": "integer",
						"minimum": 1
					}
				}
			}
		},
		"diagnostics": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["source", "message"],
				"properties": {
					"source": {"type": "string"},
					"message": {"type": "string"}
				}
			}
		}
	}
}`

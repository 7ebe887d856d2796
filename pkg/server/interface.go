/*
Package server exposes the dictionary over msgpack IPC and over HTTP.

# IPC

Clients write a stream of msgpack maps to stdin and read one response per
request from stdout. The server announces itself first:

	{"status": "ready"}

Every request names a command and may carry a word, a limit and a method:

	{"id": "1", "cmd": "check", "w": "aple"}
	{"id": "2", "cmd": "add", "w": "apple", "m": "trie"}
	{"id": "3", "cmd": "list"}
	{"id": "4", "cmd": "suggest", "w": "ap", "l": 5}
	{"id": "5", "cmd": "stats"}
	{"id": "6", "cmd": "health"}

A check for a missing word carries suggestions:

	{"id": "1", "w": "aple", "f": false, "s": ["apple", "apply"], "m": "bst", "t": 41}

Times ("t") are in microseconds. Failures come back as

	{"id": "1", "e": "word is required", "c": 400}

# HTTP

The HTTP API mirrors the browser UI routes: POST /api/check, POST /api/add,
GET /api/list, GET /api/suggest and GET /healthz, all speaking JSON.
*/
package server

// Request is one IPC message from a client.
type Request struct {
	ID     string `msgpack:"id"`
	Cmd    string `msgpack:"cmd"`
	Word   string `msgpack:"w,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
	Method string `msgpack:"m,omitempty"`
}

// Commands understood by the IPC server.
const (
	CmdCheck   = "check"
	CmdAdd     = "add"
	CmdList    = "list"
	CmdSuggest = "suggest"
	CmdStats   = "stats"
	CmdHealth  = "health"
)

// CheckResponse answers a check.
type CheckResponse struct {
	ID          string   `msgpack:"id"`
	Word        string   `msgpack:"w"`
	Found       bool     `msgpack:"f"`
	Suggestions []string `msgpack:"s,omitempty"`
	Method      string   `msgpack:"m"`
	TimeTaken   int64    `msgpack:"t"`
}

// AddResponse answers an add.
type AddResponse struct {
	ID           string `msgpack:"id"`
	Word         string `msgpack:"w"`
	Success      bool   `msgpack:"ok"`
	Message      string `msgpack:"msg"`
	Persisted    bool   `msgpack:"p"`
	PersistError string `msgpack:"pe,omitempty"`
	TimeTaken    int64  `msgpack:"t"`
}

// ListResponse carries every word of a backend.
type ListResponse struct {
	ID        string   `msgpack:"id"`
	Words     []string `msgpack:"ws"`
	Count     int      `msgpack:"c"`
	Method    string   `msgpack:"m"`
	TimeTaken int64    `msgpack:"t"`
}

// SuggestResponse answers a suggest.
type SuggestResponse struct {
	ID          string   `msgpack:"id"`
	Suggestions []string `msgpack:"s"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// StatsResponse reports backend sizes.
type StatsResponse struct {
	ID    string         `msgpack:"id"`
	Stats map[string]int `msgpack:"stats"`
}

// StatusResponse is sent on startup and for health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

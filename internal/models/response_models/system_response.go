package response_models

import "gezi/pkg/utils"

type TestResponse struct {
	Success  bool                  `json:"success"`
	Model    string                `json:"model"`
	Response string                `json:"response"`
	Usage    utils.CompletionUsage `json:"usage"`
}

type TestFailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type RawTestResponse struct {
	Success     bool `json:"success"`
	RawResponse any  `json:"raw_response"`
}

type RawTestFailureResponse struct {
	Success      bool         `json:"success"`
	Error        string       `json:"error"`
	ErrorDetails ErrorDetails `json:"error_details"`
}

type ErrorDetails struct {
	Status int `json:"status"`
}

type MemoryStats struct {
	AllocMB      float64 `json:"allocMB"`
	HeapInUseMB  float64 `json:"heapInUseMB"`
	SysMB        float64 `json:"sysMB"`
	NumGC        uint32  `json:"numGC"`
	NumGoroutine int     `json:"numGoroutine"`
}

type HealthResponse struct {
	Status        string      `json:"status"`
	Model         string      `json:"model"`
	Provider      string      `json:"provider"`
	Uptime        string      `json:"uptime"`
	UptimeSeconds float64     `json:"uptimeSeconds"`
	Timestamp     string      `json:"timestamp"`
	Memory        MemoryStats `json:"memory"`
}

type IndexResponse struct {
	Status    string   `json:"status"`
	Model     string   `json:"model"`
	Endpoints []string `json:"endpoints"`
}

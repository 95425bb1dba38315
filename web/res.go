package web

import (
	"encoding/json"
	"net/http"
)

type ErrResult struct {
	Status int         `json:"status,omitempty"`
	Des    string      `json:"description,omitempty"`
	Data   interface{} `json:"data,omitempty"`
}

// ScoreResult is the body of a successful /score response.
type ScoreResult struct {
	Length        int               `json:"length"`
	NegativeCount int               `json:"negative_count"`
	TermWeight    float64           `json:"term_weight"`
	Terms         map[string]uint32 `json:"terms"`
}

func toErrResult(status int, des string) []byte {
	b, _ := json.Marshal(&ErrResult{
		Status: status,
		Des:    des,
	})
	return b
}

func writeErr(w http.ResponseWriter, status int, des string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(toErrResult(status, des))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

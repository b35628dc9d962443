package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/export"
	"github.com/xtding233/party-lottery/internal/party"
)

type numberResp struct {
	Number    *int   `json:"number"`
	Last      *int   `json:"last,omitempty"`
	History   []int  `json:"history"`
	Remaining int    `json:"remaining"`
	Message   string `json:"message"`
	Seed      uint32 `json:"seed"`
	Round     string `json:"round"`
}

type amidaResp struct {
	Items    []string `json:"items"`
	Slots    int      `json:"slots"`
	Ready    bool     `json:"ready"`
	Revision string   `json:"revision"`
	Message  string   `json:"message"`
}

type amidaReq struct {
	Items []string `json:"items"`
}

// amidaResultResp pairs are [participant, prize], participant first.
type amidaResultResp struct {
	Items   [][2]string `json:"items"`
	Message string      `json:"message"`
}

type seedResp struct {
	Seed        uint32 `json:"seed"`
	Algorithm   string `json:"algorithm"`
	Instance    string `json:"instance"`
	AmidaOffset int    `json:"amida_offset"`
	BingoOffset int    `json:"bingo_offset"`
}

type errResp struct {
	Err string `json:"error"`
}

func (s *Server) numberResponse(snap party.BingoSnapshot, msg string) numberResp {
	history := snap.History
	if history == nil {
		history = []int{}
	}
	return numberResp{
		Number:    snap.Number,
		Last:      snap.Last,
		History:   history,
		Remaining: snap.Remaining,
		Message:   msg,
		Seed:      s.hall.Seed(),
		Round:     snap.Round.String(),
	}
}

func amidaResponse(snap party.AmidaSnapshot, msg string) amidaResp {
	items := snap.Participants
	if items == nil {
		items = []string{}
	}
	return amidaResp{
		Items:    items,
		Slots:    snap.Slots,
		Ready:    snap.Ready(),
		Revision: snap.Revision.String(),
		Message:  msg,
	}
}

func (s *Server) handleNextNumber(w http.ResponseWriter, r *http.Request) {
	snap := s.hall.Draw()
	msg := party.MsgSuccess
	if snap.Number == nil {
		msg = party.MsgGameOver
	}
	writeJSON(w, http.StatusOK, s.numberResponse(snap, msg))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.numberResponse(s.hall.ResetBingo(), party.MsgReset))
}

func (s *Server) handleBingo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.numberResponse(s.hall.Bingo(), party.MsgOK))
}

func (s *Server) handleGetAmida(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, amidaResponse(s.hall.Amida(), party.MsgOK))
}

func (s *Server) handleSetAmida(w http.ResponseWriter, r *http.Request) {
	var req amidaReq
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		status := http.StatusBadRequest
		if isBodyTooLarge(err) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, errResp{Err: "invalid body: " + err.Error()})
		return
	}
	if req.Items == nil {
		writeJSON(w, http.StatusBadRequest, errResp{Err: "missing field items"})
		return
	}
	writeJSON(w, http.StatusOK, amidaResponse(s.hall.SetParticipants(req.Items), party.MsgUpdated))
}

func (s *Server) handleAmidaResult(w http.ResponseWriter, r *http.Request) {
	pairs, ok := s.hall.AmidaResult()
	if !ok {
		writeJSON(w, http.StatusOK, amidaResultResp{Items: [][2]string{}, Message: party.MsgWaiting})
		return
	}
	writeJSON(w, http.StatusOK, amidaResultResp{Items: encodePairs(pairs), Message: party.MsgSuccess})
}

func (s *Server) handleSeed(w http.ResponseWriter, r *http.Request) {
	plan := s.hall.Plan()
	writeJSON(w, http.StatusOK, seedResp{
		Seed:        s.hall.Seed(),
		Algorithm:   string(s.hall.Algorithm()),
		Instance:    s.hall.InstanceID().String(),
		AmidaOffset: plan.AmidaOffset,
		BingoOffset: plan.BingoOffset,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	// Render fully before writing so a failure can still produce a 500.
	var buf bytes.Buffer
	if err := export.Write(&buf, export.Collect(s.hall)); err != nil {
		s.log.Error("export failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, errResp{Err: "export failed"})
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="party-results.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func encodePairs(pairs []amida.Pair) [][2]string {
	out := make([][2]string, len(pairs))
	for i, p := range pairs {
		out[i] = [2]string{p.Participant, strconv.Itoa(p.Prize)}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// isBodyTooLarge reports whether err came from http.MaxBytesReader.
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

package rpc

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/party-lottery/internal/amida"
	"github.com/xtding233/party-lottery/internal/party"
)

// Service implements PartyServiceServer on top of a party.Hall. Replies
// carry the same fields as the HTTP JSON bodies.
type Service struct {
	hall *party.Hall
}

func NewService(h *party.Hall) *Service { return &Service{hall: h} }

func (s *Service) DrawNext(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	snap := s.hall.Draw()
	msg := party.MsgSuccess
	if snap.Number == nil {
		msg = party.MsgGameOver
	}
	return s.bingoStruct(snap, msg)
}

func (s *Service) ResetBingo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.bingoStruct(s.hall.ResetBingo(), party.MsgReset)
}

func (s *Service) GetBingo(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return s.bingoStruct(s.hall.Bingo(), party.MsgOK)
}

func (s *Service) GetAmida(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return amidaStruct(s.hall.Amida(), party.MsgOK)
}

func (s *Service) GetAmidaResult(_ context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	pairs, ok := s.hall.AmidaResult()
	if !ok {
		return toStruct(map[string]any{"items": []any{}, "message": party.MsgWaiting})
	}
	return toStruct(map[string]any{"items": pairList(pairs), "message": party.MsgSuccess})
}

func (s *Service) SetParticipants(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	names, err := itemsOf(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return amidaStruct(s.hall.SetParticipants(names), party.MsgUpdated)
}

func itemsOf(in *structpb.Struct) ([]string, error) {
	v, ok := in.GetFields()["items"]
	if !ok {
		return nil, fmt.Errorf("missing field items")
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("items must be a list")
	}
	names := make([]string, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		sv, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, fmt.Errorf("items[%d] is not a string", i)
		}
		names = append(names, sv.StringValue)
	}
	return names, nil
}

func (s *Service) bingoStruct(snap party.BingoSnapshot, msg string) (*structpb.Struct, error) {
	var number, last any
	if snap.Number != nil {
		number = *snap.Number
	}
	if snap.Last != nil {
		last = *snap.Last
	}
	history := make([]any, len(snap.History))
	for i, n := range snap.History {
		history[i] = n
	}
	return toStruct(map[string]any{
		"number":    number,
		"last":      last,
		"history":   history,
		"remaining": snap.Remaining,
		"message":   msg,
		"seed":      s.hall.Seed(),
		"round":     snap.Round.String(),
	})
}

func amidaStruct(snap party.AmidaSnapshot, msg string) (*structpb.Struct, error) {
	items := make([]any, len(snap.Participants))
	for i, p := range snap.Participants {
		items[i] = p
	}
	return toStruct(map[string]any{
		"items":    items,
		"slots":    snap.Slots,
		"ready":    snap.Ready(),
		"revision": snap.Revision.String(),
		"message":  msg,
	})
}

func pairList(pairs []amida.Pair) []any {
	out := make([]any, len(pairs))
	for i, p := range pairs {
		out[i] = []any{p.Participant, strconv.Itoa(p.Prize)}
	}
	return out
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode reply: %v", err)
	}
	return st, nil
}

// LoggingInterceptor logs every unary call with its code and latency.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Info("grpc request",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/zervix/marketplace/internal/domain/model"
)

func newCapturedDispatcher() (*LogDispatcher, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewLogDispatcher(slog.New(slog.NewJSONHandler(&buf, nil))), &buf
}

func decodeRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON record, got %q: %v", buf.String(), err)
	}
	return record
}

func TestLogDispatcherOrderStatusChanged(t *testing.T) {
	dispatcher, buf := newCapturedDispatcher()
	dispatcher.OrderStatusChanged(context.Background(), 10, model.OrderStatusDelivered)

	record := decodeRecord(t, buf)
	if record["order_id"] != float64(10) || record["status"] != "DELIVERED" {
		t.Fatalf("unexpected record: %v", record)
	}
}

func TestLogDispatcherMessageSent(t *testing.T) {
	dispatcher, buf := newCapturedDispatcher()
	dispatcher.MessageSent(context.Background(), 1, 3, 9)

	record := decodeRecord(t, buf)
	if record["conversation_id"] != float64(1) || record["sender_id"] != float64(3) || record["recipient_id"] != float64(9) {
		t.Fatalf("unexpected record: %v", record)
	}
}

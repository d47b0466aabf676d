package events

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"voyager/internal/config"
)

func TestNewPublisher(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name    string
		driver  string
		wantErr bool
	}{
		{"empty driver logs only", "", false},
		{"none logs only", "none", false},
		{"kafka writer is lazy", "kafka", false},
		{"unknown driver", "carrier-pigeon", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPublisher(config.Events{
				Driver:       tt.driver,
				KafkaBrokers: []string{"localhost:9092"},
				KafkaTopic:   "voyager-events",
			}, log)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if p != nil {
				_ = p.Close()
			}
		})
	}
}

func TestLogPublisher_Publish(t *testing.T) {
	p := NewLogPublisher(zap.NewNop())
	if err := p.Publish(context.Background(), BookingCreated, BookingCreatedEvent{BookingID: "b1"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := p.Publish(context.Background(), BookingCreated, func() {}); err == nil {
		t.Fatal("expected marshal error for a func payload")
	}
}

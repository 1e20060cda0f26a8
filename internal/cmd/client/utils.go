package client

import (
	"context"
	"time"

	wxclient "github.com/rhurkes/wx-storage/pkg/client"
	"github.com/rhurkes/wx-storage/pkg/wire"
)

// EndpointFunc provides the server endpoint (e.g., from env or flag).
type EndpointFunc func() string

// withClient dials the server and ensures the connection is closed.
func withClient(ctx context.Context, endpoint EndpointFunc, fn func(*wxclient.Client) error) error {
	c, err := wxclient.Dial(ctx, endpoint())
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()
	return fn(c)
}

// eventView is the JSON shape printed by `events list`.
type eventView struct {
	IngestTS  uint64 `json:"ingest_ts"`
	IngestAt  string `json:"ingest_at"`
	EventTS   uint64 `json:"event_ts"`
	EventType string `json:"event_type"`
	Data      string `json:"data"`
}

func viewEvent(ev wire.Event) eventView {
	return eventView{
		IngestTS:  ev.IngestTS,
		IngestAt:  microsToRFC3339(ev.IngestTS),
		EventTS:   ev.EventTS,
		EventType: ev.EventType,
		Data:      ev.Data,
	}
}

// failureView is the JSON shape printed by `failures list`.
type failureView struct {
	IngestTS uint64 `json:"ingest_ts"`
	IngestAt string `json:"ingest_at"`
	Source   string `json:"source"`
	Reason   string `json:"reason"`
}

func viewFailure(ff wire.FetchFailure) failureView {
	return failureView{
		IngestTS: ff.IngestTS,
		IngestAt: microsToRFC3339(ff.IngestTS),
		Source:   ff.Source,
		Reason:   ff.Reason,
	}
}

func microsToRFC3339(micros uint64) string {
	return time.UnixMicro(int64(micros)).UTC().Format(time.RFC3339Nano)
}

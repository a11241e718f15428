package audit

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickHouseShipper writes audit events into a security_audit_events
// table, following the teacher's ClickHouseWriter connection/insert
// shape but against the hash-chained event schema of this package.
type ClickHouseShipper struct {
	conn driver.Conn
}

// NewClickHouseShipper opens a ClickHouse connection from dsn and pings
// it before returning.
func NewClickHouseShipper(dsn string) (*ClickHouseShipper, error) {
	opts, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	if opts.TLS == nil {
		opts.TLS = &tls.Config{}
	}
	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.Ping(ctx); err != nil {
		return nil, err
	}
	return &ClickHouseShipper{conn: conn}, nil
}

func (s *ClickHouseShipper) Ship(e Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO security_audit_events (
			timestamp, event_id, session_id, channel, tool_name,
			args_hash, outcome, severity, user_id, previous_hash,
			metadata, duration_ms, error_message
		)
	`)
	if err != nil {
		return fmt.Errorf("audit: clickhouse prepare batch: %w", err)
	}

	if err := batch.Append(
		e.Timestamp,
		e.EventID,
		e.SessionID,
		e.Channel,
		e.ToolName,
		e.ArgsHash,
		string(e.Outcome),
		string(e.Severity),
		e.UserID,
		e.PreviousHash,
		e.Metadata,
		e.DurationMs,
		e.ErrorMessage,
	); err != nil {
		return fmt.Errorf("audit: clickhouse append event: %w", err)
	}

	return batch.Send()
}

func (s *ClickHouseShipper) Flush() error { return nil }

func (s *ClickHouseShipper) Close() error {
	return s.conn.Close()
}

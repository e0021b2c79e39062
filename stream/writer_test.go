package stream_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/mpackhq/mpack/stream"
)

func TestWriterRentalDoubleRentFails(t *testing.T) {
	var buf bytes.Buffer
	aw := stream.NewAsyncWriter(&buf)

	rental, err := aw.RentWriter()
	if err != nil {
		t.Fatalf("RentWriter: %v", err)
	}
	if _, err := aw.RentWriter(); err == nil {
		t.Fatalf("expected a second concurrent rental to fail")
	}
	if err := rental.Return(); err != nil {
		t.Fatalf("Return: %v", err)
	}
	// Once returned, a fresh rental must succeed again.
	if _, err := aw.RentWriter(); err != nil {
		t.Fatalf("RentWriter after Return: %v", err)
	}
}

func TestWriterRentalDoubleReturnFails(t *testing.T) {
	var buf bytes.Buffer
	aw := stream.NewAsyncWriter(&buf)
	rental, err := aw.RentWriter()
	if err != nil {
		t.Fatalf("RentWriter: %v", err)
	}
	if err := rental.Return(); err != nil {
		t.Fatalf("first Return: %v", err)
	}
	if err := rental.Return(); err == nil {
		t.Fatalf("expected a second Return on the same rental to fail")
	}
}

func TestFlushIfAppropriateRespectsHighWaterMark(t *testing.T) {
	var sink bytes.Buffer
	aw := stream.NewAsyncWriter(&sink).WithHighWaterMark(8)

	rental, err := aw.RentWriter()
	if err != nil {
		t.Fatalf("RentWriter: %v", err)
	}
	rental.Writer().WriteString([]byte("ab")) // well under the 8-byte mark
	if err := rental.Return(); err != nil {
		t.Fatalf("Return: %v", err)
	}

	ctx := context.Background()
	if err := aw.FlushIfAppropriate(ctx); err != nil {
		t.Fatalf("FlushIfAppropriate: %v", err)
	}
	if sink.Len() != 0 {
		t.Fatalf("expected no flush below the high-water mark, sink has %d bytes", sink.Len())
	}

	rental, err = aw.RentWriter()
	if err != nil {
		t.Fatalf("RentWriter: %v", err)
	}
	rental.Writer().WriteString([]byte("0123456789")) // pushes well past 8 bytes total
	if err := rental.Return(); err != nil {
		t.Fatalf("Return: %v", err)
	}
	if err := aw.FlushIfAppropriate(ctx); err != nil {
		t.Fatalf("FlushIfAppropriate: %v", err)
	}
	if sink.Len() == 0 {
		t.Fatalf("expected a flush once the high-water mark is exceeded")
	}
}

func TestFlushHonorsCancelledContext(t *testing.T) {
	var sink bytes.Buffer
	aw := stream.NewAsyncWriter(&sink)

	rental, err := aw.RentWriter()
	if err != nil {
		t.Fatalf("RentWriter: %v", err)
	}
	rental.Writer().WriteString([]byte("hello"))
	if err := rental.Return(); err != nil {
		t.Fatalf("Return: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := aw.Flush(ctx); err == nil {
		t.Fatalf("expected Flush to fail against an already-cancelled context")
	}
}

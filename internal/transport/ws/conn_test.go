package ws

import (
	"bufio"
	"bytes"
	"net"
	"testing"
	"time"
)

func pipeConns(t *testing.T) (*Conn, net.Conn) {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		_ = server.Close()
		_ = client.Close()
	})
	return &Conn{conn: server, r: bufio.NewReader(server), w: bufio.NewWriter(server)}, client
}

func TestComputeAccept(t *testing.T) {
	// sample handshake from RFC 6455 section 1.3
	got := computeAccept("dGhlIHNhbXBsZSBub25jZQ==")
	want := "s3pPLMBiTxaQ9kYGzzhZRbK+xOo="
	if got != want {
		t.Fatalf("accept = %q, want %q", got, want)
	}
}

func TestWriteFrameSmallPayload(t *testing.T) {
	srv, client := pipeConns(t)

	errc := make(chan error, 1)
	go func() { errc <- srv.WriteFrame(opText, []byte("hello")) }()

	buf := make([]byte, 7)
	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := readFull(client, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("write: %v", err)
	}

	if buf[0] != 0x80|opText {
		t.Fatalf("first byte = %#x, want fin+text", buf[0])
	}
	if buf[1] != 5 {
		t.Fatalf("length byte = %d, want 5 (server frames are unmasked)", buf[1])
	}
	if string(buf[2:]) != "hello" {
		t.Fatalf("payload = %q", buf[2:])
	}
}

func TestWriteFrameExtendedLength(t *testing.T) {
	srv, client := pipeConns(t)
	payload := bytes.Repeat([]byte{'z'}, 300)

	errc := make(chan error, 1)
	go func() { errc <- srv.WriteFrame(opText, payload) }()

	buf := make([]byte, 4+len(payload))
	_ = client.SetReadDeadline(time.Now().Add(time.Second))
	if _, err := readFull(client, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("write: %v", err)
	}

	if buf[1] != 126 {
		t.Fatalf("length marker = %d, want 126", buf[1])
	}
	if got := int(buf[2])<<8 | int(buf[3]); got != 300 {
		t.Fatalf("extended length = %d, want 300", got)
	}
	if !bytes.Equal(buf[4:], payload) {
		t.Fatal("payload mismatch")
	}
}

func TestReadFrameUnmasksClientPayload(t *testing.T) {
	srv, client := pipeConns(t)

	mask := [4]byte{0x1a, 0x2b, 0x3c, 0x4d}
	payload := []byte("sos")
	frame := []byte{0x80 | opText, 0x80 | byte(len(payload))}
	frame = append(frame, mask[:]...)
	for i, b := range payload {
		frame = append(frame, b^mask[i%4])
	}

	go func() { _, _ = client.Write(frame) }()

	opcode, got, err := srv.ReadFrame()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if opcode != opText {
		t.Fatalf("opcode = %#x, want text", opcode)
	}
	if string(got) != "sos" {
		t.Fatalf("payload = %q, want %q", got, "sos")
	}
}

func TestReadFrameRejectsFragmented(t *testing.T) {
	srv, client := pipeConns(t)

	// fin bit clear
	frame := []byte{opText, 0x80 | 1, 0, 0, 0, 0, 'x'}
	go func() { _, _ = client.Write(frame) }()

	if _, _, err := srv.ReadFrame(); err == nil {
		t.Fatal("expected error for fragmented frame")
	}
}

func TestReadFrameControlOpcode(t *testing.T) {
	srv, client := pipeConns(t)

	frame := []byte{0x80 | opPing, 0x80, 0, 0, 0, 0}
	go func() { _, _ = client.Write(frame) }()

	opcode, payload, err := srv.ReadFrame()
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if opcode != opPing {
		t.Fatalf("opcode = %#x, want ping", opcode)
	}
	if len(payload) != 0 {
		t.Fatalf("ping payload length = %d, want 0", len(payload))
	}
}

func readFull(c net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := c.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

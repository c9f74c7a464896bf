package client

import "testing"

func TestDecodeFrameData(t *testing.T) {
	t.Parallel()

	// data URL 前缀要剥掉
	raw, err := decodeFrameData("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decode data url: %v", err)
	}
	if string(raw) != "hello" {
		t.Fatalf("expected payload decoded, got %q", raw)
	}

	// 裸 base64 同样接受
	raw, err = decodeFrameData("aGVsbG8=")
	if err != nil {
		t.Fatalf("decode bare base64: %v", err)
	}
	if string(raw) != "hello" {
		t.Fatalf("expected payload decoded, got %q", raw)
	}

	if _, err := decodeFrameData("not base64!!"); err == nil {
		t.Fatalf("expected error for invalid data")
	}
}

package client

import "testing"

func TestWorldScreenRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		wx, wy, offX, offY float64
	}{
		{0, 0, 0, 0},
		{100, 200, 50, 75},
		{2048, 2048, 1248, 1448},
		{-13.5, 7.25, 3.75, -9.5},
		// 二进制可精确表示的小数,往返必须逐位相等
		{0.125, 0.25, 1024, 1024},
	}
	for _, c := range cases {
		sx, sy := WorldToScreen(c.wx, c.wy, c.offX, c.offY)
		gx, gy := ScreenToWorld(sx, sy, c.offX, c.offY)
		if gx != c.wx || gy != c.wy {
			t.Fatalf("round trip (%v,%v) off (%v,%v): got (%v,%v)",
				c.wx, c.wy, c.offX, c.offY, gx, gy)
		}
	}
}

func TestWorldToScreenTranslation(t *testing.T) {
	t.Parallel()

	sx, sy := WorldToScreen(500, 600, 100, 50)
	if sx != 400 || sy != 550 {
		t.Fatalf("expected (400,550), got (%v,%v)", sx, sy)
	}
}

package client

import "testing"

func TestDecodeWelcome(t *testing.T) {
	t.Parallel()

	payload := []byte(`{
		"type": "welcome",
		"selfId": "p1",
		"players": {
			"p1": {"id":"p1","username":"alice","x":100,"y":200,"facing":"south","avatar":"hero","animationFrame":0},
			"p2": {"id":"p2","username":"bob","x":300,"y":400,"facing":"east","avatar":"hero","animationFrame":2}
		},
		"avatars": {
			"hero": {"name":"hero","frames":{"north":["aGk="],"south":["aGk="],"east":["aGk="]}}
		}
	}`)
	ev, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	w, ok := ev.(*WelcomeEvent)
	if !ok {
		t.Fatalf("expected *WelcomeEvent, got %T", ev)
	}
	if w.SelfID != "p1" || len(w.Players) != 2 || len(w.Avatars) != 1 {
		t.Fatalf("unexpected welcome: self=%s players=%d avatars=%d", w.SelfID, len(w.Players), len(w.Avatars))
	}
	if w.Players["p2"].Facing != DirEast {
		t.Fatalf("expected p2 facing east, got %s", w.Players["p2"].Facing)
	}
}

func TestDecodeEmote(t *testing.T) {
	t.Parallel()

	ev, err := DecodeEvent([]byte(`{"type":"emote","entityId":"p7","kind":"jump"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	e, ok := ev.(*EmoteEvent)
	if !ok {
		t.Fatalf("expected *EmoteEvent, got %T", ev)
	}
	if e.Entity != "p7" || e.Kind != EffectJump {
		t.Fatalf("unexpected emote %+v", e)
	}
}

func TestDecodeUnknownTypeIsNotError(t *testing.T) {
	t.Parallel()

	ev, err := DecodeEvent([]byte(`{"type":"serverGossip","data":123}`))
	if err != nil {
		t.Fatalf("unknown type must not be an error: %v", err)
	}
	u, ok := ev.(*UnknownEvent)
	if !ok {
		t.Fatalf("expected *UnknownEvent, got %T", ev)
	}
	if u.Type != "serverGossip" {
		t.Fatalf("expected type preserved, got %q", u.Type)
	}
}

func TestDecodeMalformedPayload(t *testing.T) {
	t.Parallel()

	if _, err := DecodeEvent([]byte(`{"type":`)); err == nil {
		t.Fatalf("expected error for malformed json")
	}
	if _, err := DecodeEvent([]byte(`{"type":"welcome"}`)); err == nil {
		t.Fatalf("expected error for welcome without selfId")
	}
	if _, err := DecodeEvent([]byte(`{"type":"entityLeft"}`)); err == nil {
		t.Fatalf("expected error for entityLeft without id")
	}
}

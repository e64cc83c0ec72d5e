package fonts

import (
	"encoding/base64"
	"testing"
)

func TestRegular(t *testing.T) {
	src, err := Regular()
	if err != nil {
		t.Fatalf("Regular() error: %v", err)
	}
	again, _ := Regular()
	if src != again {
		t.Error("Regular() should return the cached source")
	}

	face, err := Face(20)
	if err != nil {
		t.Fatal(err)
	}
	if face.Size() != 20 {
		t.Errorf("Size() = %v, want 20", face.Size())
	}
	if w := face.Advance("figtex"); w <= 0 {
		t.Errorf("Advance() = %v, want > 0", w)
	}
}

func TestRegularTTFBase64(t *testing.T) {
	data, err := base64.StdEncoding.DecodeString(RegularTTFBase64())
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != len(RegularTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(data), len(RegularTTF()))
	}
}

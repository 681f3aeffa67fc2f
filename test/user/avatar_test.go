package user

import (
	"testing"

	"github.com/trandrew/microblog/internal/user/service"
)

func TestAvatarURL_KnownDigest(t *testing.T) {
	got := service.AvatarURL("john@example.com", 128)
	want := "https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?d=identicon&s=128"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAvatarURL_NormalizesEmail(t *testing.T) {
	base := service.AvatarURL("john@example.com", 128)

	for _, email := range []string{
		"JOHN@EXAMPLE.COM",
		"  john@example.com  ",
		"John@Example.com",
	} {
		if got := service.AvatarURL(email, 128); got != base {
			t.Errorf("%q: expected %s, got %s", email, base, got)
		}
	}
}

func TestAvatarURL_Size(t *testing.T) {
	small := service.AvatarURL("john@example.com", 36)
	want := "https://www.gravatar.com/avatar/d4c74594d841139328695756648b6bd6?d=identicon&s=36"
	if small != want {
		t.Errorf("expected %s, got %s", want, small)
	}
}

package share

import (
	"errors"
	"testing"
	"time"

	apiconstraints "github.com/atacflux/atacflux/pkg/api/types/constraints"
	"github.com/atacflux/atacflux/pkg/utils/cmp"
	"github.com/atacflux/atacflux/pkg/utils/try"
)

func testSet() map[string]apiconstraints.Detail {
	return map[string]apiconstraints.Detail{
		"preset_anaerobic": {
			ID: "preset_anaerobic", Type: "reaction", Target: "r_1992",
			Bounds: apiconstraints.Fixed(0), Label: "oxygen: = 0", Enabled: true,
		},
		"c1": {
			ID: "c1", Type: "exchange", Target: "s_0565",
			Bounds: apiconstraints.Between(-1, 0), Label: "glucose limited", Enabled: false,
		},
	}
}

func TestSigner(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		signer := try.To(New("test-secret", time.Hour)).OrFatal(t)

		token := try.To(signer.Export(testSet())).OrFatal(t)
		got := try.To(signer.Import(token)).OrFatal(t)

		if !cmp.MapEqWith(got, testSet(), apiconstraints.Detail.Equal) {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("tampered token is rejected", func(t *testing.T) {
		signer := try.To(New("test-secret", time.Hour)).OrFatal(t)
		token := try.To(signer.Export(testSet())).OrFatal(t)

		other := try.To(New("other-secret", time.Hour)).OrFatal(t)
		if _, err := other.Import(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		signer := try.To(New("test-secret", time.Hour)).OrFatal(t)
		if _, err := signer.Import("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		signer := try.To(New("test-secret", time.Hour)).OrFatal(t)
		token := try.To(signer.Export(testSet())).OrFatal(t)

		signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		if _, err := signer.Import(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("got %v, want ErrInvalidToken", err)
		}
	})

	t.Run("empty secret is refused", func(t *testing.T) {
		if _, err := New("", time.Hour); err == nil {
			t.Error("empty secret should fail")
		}
	})
}

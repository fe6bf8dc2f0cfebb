package hash

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"
)

func TestFingerprint(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
		want  uint64
	}{
		{"no parts", nil, 0xef46db3751d8e999},
		{"single part", []string{"test"}, 0x4fdcca5ddb678139},
		{"joined parts", []string{"a", "bc"}, xxhash.Sum64String("a\x00bc")},
		{"empty parts", []string{"", ""}, xxhash.Sum64String("\x00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Fingerprint(tt.parts...))
		})
	}

	require.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
	require.Equal(t, Fingerprint(">", "id:i:1:0"), Fingerprint(">", "id:i:1:0"))
}

func BenchmarkFingerprint(b *testing.B) {
	parts := []string{">", "magic:s:4:0:ro", "version:B:2:4", "correl_id:L:1:8", "data:s:16:12"}
	for b.Loop() {
		Fingerprint(parts...)
	}
}

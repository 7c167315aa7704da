package sys

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func BenchmarkString(b *testing.B) {
	for i := 0; i < b.N; i++ {
		TestFlatten(&testing.T{})
		TestUniqueFields(&testing.T{})
		TestExcerpt(&testing.T{})
		TestLegalize(&testing.T{})
	}
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, "hello world", Flatten("Hello, World!"))
}

func TestUniqueFields(t *testing.T) {
	assert.Equal(t, "hello world", UniqueFields("Hello hello World"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "hello", Excerpt("hello"))
	assert.Equal(t, "hello worl", Excerpt("hello\nworld!"))
	assert.Equal(t, "hel", Excerpt("hello", 3))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "hello     ", Pad("hello"))
	assert.Equal(t, "hel", Pad("hello", 3))
	assert.Equal(t, "hi   ", Pad("hi", 5))
}

func TestFallback(t *testing.T) {
	assert.Equal(t, "value", Fallback("value", "fallback"))
	assert.Equal(t, "fallback", Fallback(" ", "fallback"))
}

func TestLegalize(t *testing.T) {
	assert.Equal(t, "AC_DC Live", Legalize("AC/DC Live"))
	assert.Equal(t, "a_b_c", Legalize("a\\b:c"))
	assert.Equal(t, "_", Legalize(".."))
	assert.Equal(t, "_", Legalize(" "))
}

func TestHumanizeBytes(t *testing.T) {
	assert.Equal(t, "512 B", HumanizeBytes(512))
	assert.Equal(t, "1.0 KB", HumanizeBytes(1024))
	assert.Equal(t, "1.5 MB", HumanizeBytes(1024*1024*3/2))
}

func TestMegabytes(t *testing.T) {
	assert.Equal(t, "1.00 MB", Megabytes(1024*1024))
	assert.Equal(t, "0.50 MB", Megabytes(512*1024))
}

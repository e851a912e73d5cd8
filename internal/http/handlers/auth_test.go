package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+244923456789", normalizePhone("923456789"))
	assert.Equal(t, "+244923456789", normalizePhone("+244923456789"))
	assert.Equal(t, "+244923456789", normalizePhone("00244923456789"))
	assert.Equal(t, "+244923456789", normalizePhone(" 923 456 789 "))
}

func TestBIPattern(t *testing.T) {
	assert.True(t, biPattern.MatchString("123456789LA001"))
	assert.False(t, biPattern.MatchString("12345678LA001"))
	assert.False(t, biPattern.MatchString("123456789la001"))
	assert.False(t, biPattern.MatchString("123456789LA01"))
}

func TestPhonePattern(t *testing.T) {
	assert.True(t, phonePattern.MatchString("+244923456789"))
	assert.False(t, phonePattern.MatchString("+244823456789"))
	assert.False(t, phonePattern.MatchString("923456789"))
	assert.False(t, phonePattern.MatchString("+2449234567890"))
}

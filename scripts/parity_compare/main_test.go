package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodiesEqualIgnoresVolatileFields(t *testing.T) {
	ignored := splitFields("_id, createdAt")
	a := []byte(`{"success":true,"data":[{"_id":"a","name":"1A","capacity":20,"createdAt":"x"}]}`)
	b := []byte(`{"success":true,"data":[{"_id":"b","name":"1A","capacity":20.0,"createdAt":"y"}]}`)
	assert.True(t, bodiesEqual(a, b, ignored))
}

func TestBodiesEqualDetectsDiff(t *testing.T) {
	ignored := splitFields("_id")
	a := []byte(`{"data":[{"name":"1A"}]}`)
	b := []byte(`{"data":[{"name":"1B"}]}`)
	assert.False(t, bodiesEqual(a, b, ignored))
	assert.False(t, bodiesEqual([]byte("not json"), []byte("other"), ignored))
	assert.True(t, bodiesEqual([]byte("same"), []byte("same\n"), ignored))
}

// Copyright 2026 The Taskdesk Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"testing"
	"time"
)

func TestFake_StandsStill(t *testing.T) {
	start := time.Unix(1700000000, 0).UTC()
	c := Fake(start)
	if !c.Now().Equal(start) {
		t.Fatalf("Now() = %v, want %v", c.Now(), start)
	}
	if !c.Now().Equal(start) {
		t.Fatal("time moved without Advance")
	}
}

func TestFake_Advance(t *testing.T) {
	start := time.Unix(1700000000, 0).UTC()
	c := Fake(start)
	c.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !c.Now().Equal(want) {
		t.Fatalf("Now() = %v, want %v", c.Now(), want)
	}
}

func TestFake_SetMovesBackward(t *testing.T) {
	start := time.Unix(1700000000, 0).UTC()
	c := Fake(start)
	past := start.Add(-time.Hour)
	c.Set(past)
	if !c.Now().Equal(past) {
		t.Fatalf("Now() = %v, want %v", c.Now(), past)
	}
}

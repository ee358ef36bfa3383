// Copyright (c) 2025 Deskbridge
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"strings"
	"testing"
)

func TestMonitorStateApply(t *testing.T) {
	s := &monitorState{}
	s.apply("desktopChanged", []any{"desk-2"})
	s.apply("activityChanged", []any{"act-9"})
	s.apply("windowDesktopsChanged", []any{"w1", []string{"desk-2"}})

	if s.desktop != "desk-2" {
		t.Errorf("desktop = %q, want desk-2", s.desktop)
	}
	if s.activity != "act-9" {
		t.Errorf("activity = %q, want act-9", s.activity)
	}
	if len(s.events) != 3 {
		t.Errorf("events = %d, want 3", len(s.events))
	}
}

func TestMonitorStateHistoryBounded(t *testing.T) {
	s := &monitorState{}
	for i := 0; i < monitorHistory+5; i++ {
		s.apply("desktopChanged", []any{fmt.Sprintf("desk-%d", i)})
	}
	if len(s.events) != monitorHistory {
		t.Fatalf("events = %d, want %d", len(s.events), monitorHistory)
	}
	if !strings.Contains(s.events[len(s.events)-1], fmt.Sprintf("desk-%d", monitorHistory+4)) {
		t.Errorf("last event = %q, want newest signal", s.events[len(s.events)-1])
	}
}

func TestMonitorStateRender(t *testing.T) {
	s := &monitorState{}
	if out := s.render("*", 80); !strings.Contains(out, "no signals yet") {
		t.Errorf("render() = %q, want empty notice", out)
	}
	s.apply("desktopChanged", []any{"desk-4"})
	out := s.render("*", 80)
	if !strings.Contains(out, "desk-4") {
		t.Errorf("render() = %q, want current desktop", out)
	}
}

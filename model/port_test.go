// Copyright 2026 The Floodlight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model_test

import (
	"errors"
	"testing"

	"github.com/floodlight/topology-go/model"
)

func TestPortString(t *testing.T) {
	for _, c := range []struct {
		port model.Port
		want string
	}{
		{0, "0"},
		{2, "2"},
		{65534, "65534"},
		{model.PortMax, "max"},
		{model.PortInPort, "in_port"},
		{model.PortTable, "table"},
		{model.PortNormal, "normal"},
		{model.PortFlood, "flood"},
		{model.PortAll, "all"},
		{model.PortController, "controller"},
		{model.PortLocal, "local"},
		{model.PortAny, "any"},
	} {
		if have := c.port.String(); c.want != have {
			t.Errorf("Port(%d) want %q, have %q", uint32(c.port), c.want, have)
		}
	}
}

func TestParsePort(t *testing.T) {
	for _, c := range []struct {
		in   string
		want model.Port
	}{
		{"1", 1},
		{"local", model.PortLocal},
		{"LOCAL", model.PortLocal},
		{"In_Port", model.PortInPort},
		{"4294967294", model.PortLocal},
	} {
		have, err := model.ParsePort(c.in)
		if err != nil {
			t.Errorf("ParsePort(%q) unexpected error: %+v", c.in, err)
			continue
		}
		if c.want != have {
			t.Errorf("ParsePort(%q) want %d, have %d", c.in, c.want, have)
		}
	}

	for _, in := range []string{"", "eth0", "-1", "4294967296"} {
		if _, err := model.ParsePort(in); !errors.Is(err, model.ErrInvalidPort) {
			t.Errorf("ParsePort(%q) want ErrInvalidPort, have %v", in, err)
		}
	}
}

func TestPortReserved(t *testing.T) {
	if model.Port(7).Reserved() {
		t.Errorf("Port 7 should not be reserved")
	}
	if !model.PortController.Reserved() {
		t.Errorf("controller port should be reserved")
	}
}

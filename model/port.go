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

package model

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrInvalidPort is returned when a string does not hold a port.
var ErrInvalidPort = errors.New("invalid port")

// Port is an OpenFlow 1.3 port number on a switch.
type Port uint32

// Reserved port numbers.
const (
	PortMax        Port = 0xffffff00
	PortInPort     Port = 0xfffffff8
	PortTable      Port = 0xfffffff9
	PortNormal     Port = 0xfffffffa
	PortFlood      Port = 0xfffffffb
	PortAll        Port = 0xfffffffc
	PortController Port = 0xfffffffd
	PortLocal      Port = 0xfffffffe
	PortAny        Port = 0xffffffff
)

var reservedPortNames = map[Port]string{
	PortMax:        "max",
	PortInPort:     "in_port",
	PortTable:      "table",
	PortNormal:     "normal",
	PortFlood:      "flood",
	PortAll:        "all",
	PortController: "controller",
	PortLocal:      "local",
	PortAny:        "any",
}

var reservedPorts = func() map[string]Port {
	m := make(map[string]Port, len(reservedPortNames))
	for p, name := range reservedPortNames {
		m[name] = p
	}
	return m
}()

// ParsePort returns the Port held by s, either a reserved port name or a
// decimal port number.
func ParsePort(s string) (Port, error) {
	if p, ok := reservedPorts[strings.ToLower(s)]; ok {
		return p, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidPort, "%q", s)
	}
	return Port(v), nil
}

// Reserved reports whether p is one of the named OpenFlow ports.
func (p Port) Reserved() bool {
	_, ok := reservedPortNames[p]
	return ok
}

// String renders reserved ports by name and all others in decimal.
func (p Port) String() string {
	if name, ok := reservedPortNames[p]; ok {
		return name
	}
	return strconv.FormatUint(uint64(p), 10)
}

// MarshalText implements encoding.TextMarshaler.
func (p Port) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Port) UnmarshalText(text []byte) error {
	v, err := ParsePort(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

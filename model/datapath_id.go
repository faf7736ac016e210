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

// ErrInvalidDatapathID is returned when a string does not hold a datapath id.
var ErrInvalidDatapathID = errors.New("invalid datapath id")

// DatapathID identifies an OpenFlow switch.
type DatapathID uint64

const hexDigits = "0123456789abcdef"

// ParseDatapathID returns the DatapathID held by s. Accepted forms are the
// canonical eight colon separated octets, a 0x prefixed hex literal and a
// plain decimal number.
func ParseDatapathID(s string) (DatapathID, error) {
	switch {
	case strings.Contains(s, ":"):
		octets := strings.Split(s, ":")
		if len(octets) != 8 {
			return 0, errors.Wrapf(ErrInvalidDatapathID, "%q", s)
		}
		var d uint64
		for _, o := range octets {
			if len(o) == 0 || len(o) > 2 {
				return 0, errors.Wrapf(ErrInvalidDatapathID, "%q", s)
			}
			v, err := strconv.ParseUint(o, 16, 8)
			if err != nil {
				return 0, errors.Wrapf(ErrInvalidDatapathID, "%q", s)
			}
			d = d<<8 | v
		}
		return DatapathID(d), nil
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidDatapathID, "%q", s)
		}
		return DatapathID(v), nil
	default:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrInvalidDatapathID, "%q", s)
		}
		return DatapathID(v), nil
	}
}

// String renders the id as eight lowercase hex octets separated by colons.
func (d DatapathID) String() string {
	var b [23]byte
	for i := 0; i < 8; i++ {
		o := byte(uint64(d) >> (56 - 8*uint(i)))
		b[3*i] = hexDigits[o>>4]
		b[3*i+1] = hexDigits[o&0x0f]
		if i < 7 {
			b[3*i+2] = ':'
		}
	}
	return string(b[:])
}

// MarshalText implements encoding.TextMarshaler.
func (d DatapathID) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DatapathID) UnmarshalText(text []byte) error {
	v, err := ParseDatapathID(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

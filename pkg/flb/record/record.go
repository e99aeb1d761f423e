// SPDX-License-Identifier: Apache-2.0
/*
Copyright (C) 2024 The Fluent Bit Go Plugin SDK Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package record decodes the MessagePack chunks that Fluent Bit passes to
// the flush callback of output plugins.
//
// A chunk is a sequence of events, each one being either
// [timestamp, record] or, since Fluent Bit v2.1, [[timestamp, metadata],
// record]. Timestamps are EventTime extensions or plain numbers of
// seconds.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/ugorji/go/codec"
)

// EventTimeExt is the MessagePack extension type of EventTime.
const EventTimeExt = 0

var (
	errEventFormat = errors.New("event is not an array of two elements")
	errHeader      = errors.New("event header is not an array of timestamp and metadata")
	errTimestamp   = errors.New("unsupported timestamp type")
	errRecord      = errors.New("record is not a map")
)

// EventTime is the timestamp format of Fluent Bit events, holding
// seconds and nanoseconds.
type EventTime struct {
	time.Time
}

// WriteExt encodes the timestamp as 4 bytes of seconds followed by
// 4 bytes of nanoseconds, big endian.
func (EventTime) WriteExt(v interface{}) []byte {
	var t time.Time
	switch e := v.(type) {
	case EventTime:
		t = e.Time
	case *EventTime:
		t = e.Time
	default:
		panic(fmt.Sprintf("plugin-sdk-go/flb/record: unsupported type %T", v))
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint32(b, uint32(t.Unix()))
	binary.BigEndian.PutUint32(b[4:], uint32(t.Nanosecond()))
	return b
}

// ReadExt decodes the timestamp written by WriteExt.
func (EventTime) ReadExt(dst interface{}, src []byte) {
	out := dst.(*EventTime)
	if len(src) < 8 {
		out.Time = time.Time{}
		return
	}
	sec := binary.BigEndian.Uint32(src)
	nsec := binary.BigEndian.Uint32(src[4:])
	out.Time = time.Unix(int64(sec), int64(nsec))
}

// Record is one event of a chunk.
type Record struct {
	Time     time.Time
	Metadata map[string]interface{}
	Fields   map[string]interface{}
}

// Handle returns the MessagePack handle that understands EventTime.
// Plugins can use it to encode events, for example in tests.
func Handle() *codec.MsgpackHandle {
	h := &codec.MsgpackHandle{}
	h.WriteExt = true
	h.RawToString = true
	h.MapType = reflect.TypeOf(map[string]interface{}(nil))
	if err := h.SetBytesExt(reflect.TypeOf(EventTime{}), EventTimeExt, EventTime{}); err != nil {
		panic(fmt.Sprintf("plugin-sdk-go/flb/record: %s", err.Error()))
	}
	return h
}

// Decoder reads the events of a chunk.
type Decoder struct {
	data []byte
	dec  *codec.Decoder
}

// NewDecoder returns a Decoder reading from data. The decoded records
// never alias data, so they can outlive the flush callback.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		data: data,
		dec:  codec.NewDecoderBytes(data, Handle()),
	}
}

// Next returns the next event of the chunk, or io.EOF once all the events
// have been read.
func (d *Decoder) Next() (*Record, error) {
	if d.dec.NumBytesRead() >= len(d.data) {
		return nil, io.EOF
	}

	var event []interface{}
	if err := d.dec.Decode(&event); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}
	if len(event) != 2 {
		return nil, errEventFormat
	}

	rec := &Record{}
	ts := event[0]
	if header, ok := ts.([]interface{}); ok {
		if len(header) != 2 {
			return nil, errHeader
		}
		ts = header[0]
		meta, err := toMap(header[1])
		if err != nil {
			return nil, fmt.Errorf("decoding metadata: %w", err)
		}
		rec.Metadata = meta
	}

	t, err := toTime(ts)
	if err != nil {
		return nil, err
	}
	rec.Time = t

	rec.Fields, err = toMap(event[1])
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func toTime(v interface{}) (time.Time, error) {
	switch t := v.(type) {
	case EventTime:
		return t.Time, nil
	case *EventTime:
		return t.Time, nil
	case uint64:
		return time.Unix(int64(t), 0), nil
	case int64:
		return time.Unix(t, 0), nil
	case float64:
		sec := int64(t)
		return time.Unix(sec, int64((t-float64(sec))*1e9)), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %T", errTimestamp, v)
	}
}

func toMap(v interface{}) (map[string]interface{}, error) {
	switch m := v.(type) {
	case nil:
		return map[string]interface{}{}, nil
	case map[string]interface{}:
		return m, nil
	case map[interface{}]interface{}:
		res := make(map[string]interface{}, len(m))
		for k, v := range m {
			res[fmt.Sprint(k)] = v
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: %T", errRecord, v)
	}
}

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

package output

import (
	"fmt"
	"runtime/debug"
	"time"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/fluentbit-go/plugin-sdk-go/pkg/cgo"
	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb"
	"github.com/fluentbit-go/plugin-sdk-go/pkg/flb/schema"
)

// Proxy drives the instances of the plugin type P on behalf of the host.
// Its methods take the raw arguments of the exported C symbols.
//
// An instance is moved into the handle table by Init, borrowed by each
// Flush and moved out by Exit. The host must not call Flush or Exit
// concurrently for the same context; calls for different contexts can
// run in parallel.
type Proxy[P Plugin] struct {
	info    Info
	newFn   func(config flb.Config) P
	schema  *schema.Schema
	log     logrus.FieldLogger
	metrics *metrics
}

// NewProxy returns a Proxy creating instances with newFn. It panics if
// info declares an invalid schema.
func NewProxy[P Plugin](info Info, newFn func(config flb.Config) P, opts ...Option) *Proxy[P] {
	if newFn == nil {
		panic("plugin-sdk-go/flb/plugins/output: newFn must not be nil")
	}
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Proxy[P]{
		info:    info,
		newFn:   newFn,
		log:     o.logger.WithField("plugin", info.Name),
		metrics: newMetrics(),
	}
	if info.Schema != "" {
		s, err := schema.Compile(info.Schema)
		if err != nil {
			panic(fmt.Sprintf("plugin-sdk-go/flb/plugins/output: plugin %q: %s", info.Name, err.Error()))
		}
		p.schema = s
	}
	if o.registerer != nil {
		if err := p.metrics.register(o.registerer, info.Name); err != nil {
			p.log.WithError(err).Warn("cannot register metrics")
		}
	}
	return p
}

func (p *Proxy[P]) violation(call string, format string, args ...interface{}) int {
	p.metrics.violations.WithLabelValues(call).Inc()
	p.log.WithField("call", call).Errorf(format, args...)
	return flb.FLBError
}

// Register describes the plugin in the registration record pointed by def.
func (p *Proxy[P]) Register(def unsafe.Pointer) int {
	if !flb.SetOutputDefinition(def, p.info.Name, p.info.Description) {
		p.violation("register", "nil registration record")
		return flb.RegisterFailure
	}
	return flb.RegisterSuccess
}

// Unregister does nothing: instances are released by Exit.
func (p *Proxy[P]) Unregister(def unsafe.Pointer) int {
	return flb.RegisterSuccess
}

// Init creates an instance from the properties of the plugin record
// pointed by plugin, and stores its handle in the record context.
//
// The result is FLBOk whatever the constructor does with the properties.
// It is FLBError only if no instance can be handed to the host: the
// record has no context, the constructor panicked, or there are no
// handles left.
func (p *Proxy[P]) Init(plugin unsafe.Pointer) int {
	if !flb.HasRemoteContext(plugin) {
		return p.violation("init", "nil plugin record or context")
	}

	config := flb.NewOutputConfig(plugin)
	if p.schema != nil {
		if err := p.schema.Validate(config); err != nil {
			p.log.WithError(err).Warn("properties do not match the plugin schema")
		}
	}
	instance, err := p.construct(config)
	config.Release()
	if err != nil {
		p.log.WithError(err).Error("cannot create instance")
		return flb.FLBError
	}

	h, err := cgo.NewHandle(instance)
	if err != nil {
		p.log.WithError(err).Error("cannot store instance")
		if err := p.exit(instance); err != nil {
			p.log.WithError(err).Warn("cannot release instance")
		}
		return flb.FLBError
	}
	flb.SetRemoteContext(plugin, uintptr(h))
	p.metrics.instances.Inc()
	p.log.WithField("context", uintptr(h)).Debug("instance initialized")
	return flb.FLBOk
}

// Flush passes the length bytes pointed by data and the tag to the
// instance stored at ctx. The instance stays in place whatever the result.
func (p *Proxy[P]) Flush(ctx uintptr, data unsafe.Pointer, length int, tag unsafe.Pointer) int {
	if ctx == 0 {
		return p.violation("flush", "nil context")
	}
	instance, ok := p.instance(cgo.Handle(ctx).Load())
	if !ok {
		return p.violation("flush", "no instance for context %d", ctx)
	}
	t, ok := flb.GoString(tag)
	if !ok {
		return p.violation("flush", "tag is not valid text")
	}
	if length < 0 {
		return p.violation("flush", "negative payload length %d", length)
	}

	start := time.Now()
	err := p.flush(instance, t, flb.GoBytes(data, length))
	code := flb.ResultCode(err)
	p.metrics.observeFlush(code, length, time.Since(start))
	if err != nil {
		p.log.WithError(err).WithField("tag", t).Debug("flush failed")
	}
	return code
}

// Exit finalizes the instance stored at ctx and removes it, whatever
// the result. A context can be finalized only once.
func (p *Proxy[P]) Exit(ctx uintptr) int {
	if ctx == 0 {
		return p.violation("exit", "nil context")
	}
	instance, ok := p.instance(cgo.Handle(ctx).Take())
	if !ok {
		return p.violation("exit", "no instance for context %d", ctx)
	}

	err := p.exit(instance)
	code := flb.ResultCode(err)
	p.metrics.observeExit(code)
	if err != nil {
		p.log.WithError(err).Warn("exit failed")
	} else {
		p.log.WithField("context", ctx).Debug("instance finalized")
	}
	return code
}

func (p *Proxy[P]) instance(v interface{}, ok bool) (P, bool) {
	if !ok {
		var zero P
		return zero, false
	}
	instance, ok := v.(P)
	return instance, ok
}

// The callbacks of the plugin run behind a recover: a panic must not
// unwind through the C frames of the host.

func (p *Proxy[P]) construct(config flb.Config) (instance P, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = p.recovered("init", r)
		}
	}()
	return p.newFn(config), nil
}

func (p *Proxy[P]) flush(instance P, tag string, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = p.recovered("flush", r)
		}
	}()
	return instance.Flush(tag, data)
}

func (p *Proxy[P]) exit(instance P) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = p.recovered("exit", r)
		}
	}()
	return instance.Exit()
}

func (p *Proxy[P]) recovered(call string, r interface{}) error {
	p.log.WithFields(logrus.Fields{
		"call":  call,
		"stack": string(debug.Stack()),
	}).Errorf("plugin panicked: %v", r)
	return fmt.Errorf("panic in %s: %v: %w", call, r, flb.Failure)
}

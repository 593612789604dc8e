// Copyright 2020-2021 Dolthub, Inc.
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

package test

import (
	"sync"

	opentracing "github.com/opentracing/opentracing-go"
)

// MemTracer implements a simple tracer in memory for testing.
type MemTracer struct {
	Spans []string
	sync.Mutex
}

var _ opentracing.Tracer = (*MemTracer)(nil)

// StartSpan implements opentracing.Tracer.
func (t *MemTracer) StartSpan(operationName string, opts ...opentracing.StartSpanOption) opentracing.Span {
	t.Lock()
	t.Spans = append(t.Spans, operationName)
	t.Unlock()
	return opentracing.NoopTracer{}.StartSpan(operationName, opts...)
}

// Inject implements opentracing.Tracer.
func (*MemTracer) Inject(opentracing.SpanContext, interface{}, interface{}) error {
	return nil
}

// Extract implements opentracing.Tracer.
func (*MemTracer) Extract(interface{}, interface{}) (opentracing.SpanContext, error) {
	return nil, opentracing.ErrSpanContextNotFound
}

// Install makes the tracer the global one until the returned function is called.
func (t *MemTracer) Install() (restore func()) {
	previous := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(t)
	return func() { opentracing.SetGlobalTracer(previous) }
}

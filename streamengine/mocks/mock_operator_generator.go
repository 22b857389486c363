// Hand-maintained in MockGen's output shape.
// Source: github.com/project/streamline/streamengine (interfaces: OperatorGenerator)

// Package mocks holds hand-maintained stand-ins for the generated
// go.uber.org/mock doubles the usecase tests in the teacher repo rely on;
// mockgen itself is not run here, but the shape (MockXxx + recorder +
// EXPECT()) matches its output exactly so gomock.Controller can drive it.
package mocks

import (
	"context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	streamengine "github.com/project/streamline/streamengine"
)

// MockOperatorGenerator is a mock of the OperatorGenerator interface.
type MockOperatorGenerator struct {
	ctrl     *gomock.Controller
	recorder *MockOperatorGeneratorMockRecorder
}

// MockOperatorGeneratorMockRecorder is the mock recorder for MockOperatorGenerator.
type MockOperatorGeneratorMockRecorder struct {
	mock *MockOperatorGenerator
}

// NewMockOperatorGenerator creates a new mock instance.
func NewMockOperatorGenerator(ctrl *gomock.Controller) *MockOperatorGenerator {
	mock := &MockOperatorGenerator{ctrl: ctrl}
	mock.recorder = &MockOperatorGeneratorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockOperatorGenerator) EXPECT() *MockOperatorGeneratorMockRecorder {
	return m.recorder
}

// IsAggregator mocks base method.
func (m *MockOperatorGenerator) IsAggregator() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsAggregator")
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsAggregator indicates an expected call of IsAggregator.
func (mr *MockOperatorGeneratorMockRecorder) IsAggregator() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsAggregator", reflect.TypeOf((*MockOperatorGenerator)(nil).IsAggregator))
}

// IsConcurrent mocks base method.
func (m *MockOperatorGenerator) IsConcurrent() bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "IsConcurrent")
	ret0, _ := ret[0].(bool)
	return ret0
}

// IsConcurrent indicates an expected call of IsConcurrent.
func (mr *MockOperatorGeneratorMockRecorder) IsConcurrent() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "IsConcurrent", reflect.TypeOf((*MockOperatorGenerator)(nil).IsConcurrent))
}

// Combiner mocks base method.
func (m *MockOperatorGenerator) Combiner() (streamengine.Combiner, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Combiner")
	ret0, _ := ret[0].(streamengine.Combiner)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// Combiner indicates an expected call of Combiner.
func (mr *MockOperatorGeneratorMockRecorder) Combiner() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Combiner", reflect.TypeOf((*MockOperatorGenerator)(nil).Combiner))
}

// Emitter mocks base method.
func (m *MockOperatorGenerator) Emitter() streamengine.Emitter {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Emitter")
	ret0, _ := ret[0].(streamengine.Emitter)
	return ret0
}

// Emitter indicates an expected call of Emitter.
func (mr *MockOperatorGeneratorMockRecorder) Emitter() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Emitter", reflect.TypeOf((*MockOperatorGenerator)(nil).Emitter))
}

// Serializer mocks base method.
func (m *MockOperatorGenerator) Serializer() streamengine.Serializer {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Serializer")
	ret0, _ := ret[0].(streamengine.Serializer)
	return ret0
}

// Serializer indicates an expected call of Serializer.
func (mr *MockOperatorGeneratorMockRecorder) Serializer() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Serializer", reflect.TypeOf((*MockOperatorGenerator)(nil).Serializer))
}

// Deserializer mocks base method.
func (m *MockOperatorGenerator) Deserializer() streamengine.Deserializer {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deserializer")
	ret0, _ := ret[0].(streamengine.Deserializer)
	return ret0
}

// Deserializer indicates an expected call of Deserializer.
func (mr *MockOperatorGeneratorMockRecorder) Deserializer() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deserializer", reflect.TypeOf((*MockOperatorGenerator)(nil).Deserializer))
}

// RecurTo mocks base method.
func (m *MockOperatorGenerator) RecurTo(outer streamengine.OperatorGenerator) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "RecurTo", outer)
}

// RecurTo indicates an expected call of RecurTo.
func (mr *MockOperatorGeneratorMockRecorder) RecurTo(outer any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecurTo", reflect.TypeOf((*MockOperatorGenerator)(nil).RecurTo), outer)
}

// RecurTarget mocks base method.
func (m *MockOperatorGenerator) RecurTarget() (streamengine.OperatorGenerator, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecurTarget")
	ret0, _ := ret[0].(streamengine.OperatorGenerator)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// RecurTarget indicates an expected call of RecurTarget.
func (mr *MockOperatorGeneratorMockRecorder) RecurTarget() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecurTarget", reflect.TypeOf((*MockOperatorGenerator)(nil).RecurTarget))
}

// Descriptor mocks base method.
func (m *MockOperatorGenerator) Descriptor() any {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Descriptor")
	ret0, _ := ret[0].(any)
	return ret0
}

// Descriptor indicates an expected call of Descriptor.
func (mr *MockOperatorGeneratorMockRecorder) Descriptor() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Descriptor", reflect.TypeOf((*MockOperatorGenerator)(nil).Descriptor))
}

// Create mocks base method.
func (m *MockOperatorGenerator) Create(ctx context.Context, opts streamengine.Options) (streamengine.StreamOperator, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Create", ctx, opts)
	ret0, _ := ret[0].(streamengine.StreamOperator)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Create indicates an expected call of Create.
func (mr *MockOperatorGeneratorMockRecorder) Create(ctx, opts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Create", reflect.TypeOf((*MockOperatorGenerator)(nil).Create), ctx, opts)
}

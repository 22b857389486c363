// Hand-maintained in MockGen's output shape.
// Source: github.com/project/streamline/streamengine (interfaces: StreamOperator, Aggregator, BufferedAggregator)

package mocks

import (
	"context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	streamengine "github.com/project/streamline/streamengine"
)

// MockStreamOperator is a mock of the StreamOperator/Aggregator/
// BufferedAggregator interfaces combined, since a split sub-pipeline or a
// buffered wrapper is typically driven through all three at once.
type MockStreamOperator struct {
	ctrl     *gomock.Controller
	recorder *MockStreamOperatorMockRecorder
}

// MockStreamOperatorMockRecorder is the mock recorder for MockStreamOperator.
type MockStreamOperatorMockRecorder struct {
	mock *MockStreamOperator
}

// NewMockStreamOperator creates a new mock instance.
func NewMockStreamOperator(ctrl *gomock.Controller) *MockStreamOperator {
	mock := &MockStreamOperator{ctrl: ctrl}
	mock.recorder = &MockStreamOperatorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStreamOperator) EXPECT() *MockStreamOperatorMockRecorder {
	return m.recorder
}

// ProcessAll mocks base method.
func (m *MockStreamOperator) ProcessAll(ctx context.Context, msgs []streamengine.Message) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ProcessAll", ctx, msgs)
}

// ProcessAll indicates an expected call of ProcessAll.
func (mr *MockStreamOperatorMockRecorder) ProcessAll(ctx, msgs any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ProcessAll", reflect.TypeOf((*MockStreamOperator)(nil).ProcessAll), ctx, msgs)
}

// Reset mocks base method.
func (m *MockStreamOperator) Reset(ctx context.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Reset", ctx)
}

// Reset indicates an expected call of Reset.
func (mr *MockStreamOperatorMockRecorder) Reset(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Reset", reflect.TypeOf((*MockStreamOperator)(nil).Reset), ctx)
}

// Process mocks base method.
func (m *MockStreamOperator) Process(ctx context.Context, msg streamengine.Message) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Process", ctx, msg)
}

// Process indicates an expected call of Process.
func (mr *MockStreamOperatorMockRecorder) Process(ctx, msg any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Process", reflect.TypeOf((*MockStreamOperator)(nil).Process), ctx, msg)
}

// Flush mocks base method.
func (m *MockStreamOperator) Flush(ctx context.Context) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "Flush", ctx)
}

// Flush indicates an expected call of Flush.
func (mr *MockStreamOperatorMockRecorder) Flush(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Flush", reflect.TypeOf((*MockStreamOperator)(nil).Flush), ctx)
}

// Deref mocks base method.
func (m *MockStreamOperator) Deref(ctx context.Context) any {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Deref", ctx)
	ret0, _ := ret[0].(any)
	return ret0
}

// Deref indicates an expected call of Deref.
func (mr *MockStreamOperatorMockRecorder) Deref(ctx any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Deref", reflect.TypeOf((*MockStreamOperator)(nil).Deref), ctx)
}

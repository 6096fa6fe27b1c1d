package hugecache_test

import (
	"reflect"

	"go.uber.org/mock/gomock"

	"github.com/go-hugecache/hugecache"
)

// MockUnbacker is a gomock.Controller-backed mock of hugecache.Unbacker,
// shaped the way mockgen would generate it. Written by hand since no
// generator is run in this tree; go.uber.org/mock's EXPECT()/Call()/
// RecordCallWithMethodType runtime is still exercised directly.
type MockUnbacker struct {
	ctrl     *gomock.Controller
	recorder *MockUnbackerMockRecorder
}

type MockUnbackerMockRecorder struct {
	mock *MockUnbacker
}

func NewMockUnbacker(ctrl *gomock.Controller) *MockUnbacker {
	mock := &MockUnbacker{ctrl: ctrl}
	mock.recorder = &MockUnbackerMockRecorder{mock}
	return mock
}

func (m *MockUnbacker) EXPECT() *MockUnbackerMockRecorder {
	return m.recorder
}

func (m *MockUnbacker) Unback(r hugecache.HugeRange) bool {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Unback", r)
	ret0, _ := ret[0].(bool)
	return ret0
}

func (mr *MockUnbackerMockRecorder) Unback(r interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Unback", reflect.TypeOf((*MockUnbacker)(nil).Unback), r)
}

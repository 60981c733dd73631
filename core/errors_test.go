package core

import (
	"errors"
	"testing"
)

func TestDomainErrorChecks(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"customer not found", ErrCustomerNotFound, IsNotFound, true},
		{"no embedding", ErrNoCustomerEmbedding, IsNoEmbedding, true},
		{"store not found", ErrStoreNotFound, IsStoreNotFound, true},
		{"not supported", ErrStoreNotSupported, IsStoreNotSupported, true},
		{"corrupt embedding", NewDomainError(ModuleVector, ErrorCodeCorruptEmbedding, "bad vector"), IsCorruptEmbedding, true},
		{"dimension mismatch", NewDomainError(ModuleVector, ErrorCodeDimensionMismatch, "dims"), IsDimensionMismatch, true},
		{"wrong code", ErrCustomerNotFound, IsNoEmbedding, false},
		{"plain error", errors.New("boom"), IsNotFound, false},
		{"nil error", nil, IsNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("check(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestGetDomainError(t *testing.T) {
	de := GetDomainError(ErrCustomerNotFound)
	if de == nil {
		t.Fatal("GetDomainError returned nil")
	}
	if de.Module != ModuleRecommend || de.Code != ErrorCodeNotFound {
		t.Errorf("DomainError = %+v", de)
	}
	if GetDomainError(errors.New("plain")) != nil {
		t.Error("plain error should not be a DomainError")
	}
}

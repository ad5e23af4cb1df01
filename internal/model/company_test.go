package model

import (
	"sync"
	"testing"

	"gorm.io/gorm/schema"
)

// A soft-deleted row would still hold its registration number but vanish from
// the lookup that follows an insert conflict.
func TestCompanyHasNoSoftDelete(t *testing.T) {
	s, err := schema.Parse(&Company{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		t.Fatalf("schema.Parse err=%v", err)
	}
	if f := s.LookUpField("deleted_at"); f != nil {
		t.Fatalf("Company has soft-delete field %q", f.Name)
	}
	if s.LookUpField("registration_number") == nil {
		t.Fatalf("Company is missing registration_number")
	}
}

package models

import (
	"testing"
	"time"
)

func TestIsValidBookingAction(t *testing.T) {
	if !IsValidBookingAction(BookingStatusApproved) || !IsValidBookingAction(BookingStatusRejected) {
		t.Fatal("approved and rejected are valid admin actions")
	}
	if IsValidBookingAction(BookingStatusPending) {
		t.Fatal("pending is not an admin action")
	}
	if IsValidBookingAction("cancelled") {
		t.Fatal("unknown statuses are not admin actions")
	}
}

func TestIsValidPaymentType(t *testing.T) {
	for _, pt := range []PaymentType{PaymentTypeKareemi, PaymentTypeOneCash, PaymentTypeBank} {
		if !IsValidPaymentType(pt) {
			t.Fatalf("%q should be valid", pt)
		}
	}
	for _, pt := range []PaymentType{"", "cash", "KAREEMI"} {
		if IsValidPaymentType(pt) {
			t.Fatalf("%q should be invalid", pt)
		}
	}
}

func TestActivationCodeIsRedeemable(t *testing.T) {
	now := time.Now()

	code := ActivationCode{Code: "123456", ExpiresAt: now.Add(time.Hour)}
	if !code.IsRedeemable(now) {
		t.Fatal("fresh code should be redeemable")
	}

	code.Used = true
	if code.IsRedeemable(now) {
		t.Fatal("used code should not be redeemable")
	}

	expired := ActivationCode{Code: "123456", ExpiresAt: now.Add(-time.Minute)}
	if expired.IsRedeemable(now) {
		t.Fatal("expired code should not be redeemable")
	}
}

func TestUserRoleHelpers(t *testing.T) {
	provider := User{Role: RoleProvider}
	client := User{Role: RoleClient}

	if !provider.IsValidRole() || !client.IsValidRole() {
		t.Fatal("client and provider are valid roles")
	}
	other := User{Role: "admin"}
	if other.IsValidRole() {
		t.Fatal("admin is not a marketplace role")
	}
	if !provider.IsProvider() || provider.IsClient() {
		t.Fatal("provider role helpers disagree")
	}
	if !client.IsClient() || client.IsProvider() {
		t.Fatal("client role helpers disagree")
	}
}

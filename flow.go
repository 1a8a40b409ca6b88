package main

// FlowState is the resolved state of a device-facing flow. Handlers return a
// single tagged state instead of a pile of boolean flags so each transition
// in the registration and check-in flows stays visible and testable.
type FlowState string

const (
	// StateUnregistered means no device row exists yet; the client should
	// collect and submit a nickname.
	StateUnregistered FlowState = "unregistered"
	// StateRegistered means a device row exists; used in registration
	// responses before the check-in lookup runs.
	StateRegistered FlowState = "registered"
	// StateAnswering means the device is registered and has not submitted
	// today's check-in.
	StateAnswering FlowState = "answering"
	// StateAlreadySubmitted is terminal for the day: a record exists for
	// (device, today) and only the nickname remains editable.
	StateAlreadySubmitted FlowState = "already_submitted"
	// StateUnauthorized is the admin gate's denial state.
	StateUnauthorized FlowState = "unauthorized"
)

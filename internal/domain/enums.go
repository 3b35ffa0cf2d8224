package domain

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectDone     ProjectStatus = "done"
	ProjectArchived ProjectStatus = "archived"
)

// DeviceType is the closed set of equipment categories a node can represent.
// The palette and the scene share this enumeration.
type DeviceType string

const (
	DeviceCCTV          DeviceType = "cctv"
	DeviceDomeCamera    DeviceType = "dome_camera"
	DevicePTZCamera     DeviceType = "ptz_camera"
	DeviceBulletCamera  DeviceType = "bullet_camera"
	DeviceNVR           DeviceType = "nvr"
	DeviceRouter        DeviceType = "router"
	DeviceSwitch        DeviceType = "switch"
	DeviceAccessPoint   DeviceType = "access_point"
	DevicePatchPanel    DeviceType = "patch_panel"
	DeviceUPS           DeviceType = "ups"
	DeviceMotionSensor  DeviceType = "motion_sensor"
	DeviceSmokeDetector DeviceType = "smoke_detector"
	DeviceDoorSensor    DeviceType = "door_sensor"
	DeviceCardReader    DeviceType = "card_reader"
	DeviceKeypad        DeviceType = "keypad"
	DeviceElectricLock  DeviceType = "electric_lock"
	DeviceIntercom      DeviceType = "intercom"
	DeviceRack          DeviceType = "rack"
)

// DeviceTypes lists every device type in palette order.
var DeviceTypes = []DeviceType{
	DeviceCCTV, DeviceDomeCamera, DevicePTZCamera, DeviceBulletCamera, DeviceNVR,
	DeviceRouter, DeviceSwitch, DeviceAccessPoint, DevicePatchPanel, DeviceUPS,
	DeviceMotionSensor, DeviceSmokeDetector, DeviceDoorSensor,
	DeviceCardReader, DeviceKeypad, DeviceElectricLock, DeviceIntercom,
	DeviceRack,
}

var validDeviceTypes = func() map[DeviceType]bool {
	m := make(map[DeviceType]bool, len(DeviceTypes))
	for _, t := range DeviceTypes {
		m[t] = true
	}
	return m
}()

// Valid reports whether t belongs to the device enumeration.
func (t DeviceType) Valid() bool {
	return validDeviceTypes[t]
}

// IsRack reports whether nodes of this type can contain other devices.
func (t DeviceType) IsRack() bool {
	return t == DeviceRack
}

// ParseDeviceType validates a user-supplied device type string.
func ParseDeviceType(s string) (DeviceType, error) {
	t := DeviceType(s)
	if !t.Valid() {
		return "", &InvalidValueError{Field: "device type", Value: s}
	}
	return t, nil
}

// InstallStatus is the installation state recorded for a device or cable.
type InstallStatus string

const (
	StatusUnset         InstallStatus = ""
	StatusPending       InstallStatus = "pending"
	StatusInstalled     InstallStatus = "installed"
	StatusCannotInstall InstallStatus = "cannot_install"
)

// ValidInstallStatuses is the canonical set of accepted status strings.
var ValidInstallStatuses = map[InstallStatus]bool{
	StatusUnset: true, StatusPending: true, StatusInstalled: true, StatusCannotInstall: true,
}

// CarriesEvidence reports whether evidence is kept alongside this status.
func (s InstallStatus) CarriesEvidence() bool {
	return s == StatusInstalled || s == StatusCannotInstall
}

// ParseInstallStatus accepts "unset" as an alias for the empty status.
func ParseInstallStatus(s string) (InstallStatus, error) {
	if s == "unset" {
		return StatusUnset, nil
	}
	st := InstallStatus(s)
	if !ValidInstallStatuses[st] {
		return "", &InvalidValueError{Field: "status", Value: s}
	}
	return st, nil
}

// Mode is how pointer gestures on the canvas are interpreted.
type Mode string

const (
	ModeSelect      Mode = "select"
	ModePlaceDevice Mode = "place-device"
	ModeDrawCable   Mode = "draw-cable"
)

// SelectionKind distinguishes what a selection points at.
type SelectionKind string

const (
	SelectNode  SelectionKind = "node"
	SelectCable SelectionKind = "cable"
)

// Package i18n holds user-facing strings keyed by stable identifiers.
package i18n

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/alexanderramin/sitemap/internal/domain"
)

// Catalog maps message keys to templates. Placeholders are written {{name}}.
type Catalog map[string]string

// T renders key with params. Unknown keys render as the key itself so a
// missing translation is visible rather than blank.
func (c Catalog) T(key string, params map[string]any) string {
	msg, ok := c[key]
	if !ok {
		return key
	}
	if len(params) == 0 {
		return msg
	}
	pairs := make([]string, 0, len(params)*2)
	for _, k := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, "{{"+k+"}}", fmt.Sprint(params[k]))
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

// Default is the catalog used by the package-level T.
var Default = English

// T renders key from the default catalog.
func T(key string, params map[string]any) string {
	return Default.T(key, params)
}

// English is the built-in catalog.
var English = Catalog{
	"floor.default":         "Floor {{n}}",
	"floor.added":           "Added {{name}}",
	"floor.deleted":         "Deleted {{name}}",
	"floor.renamed":         "Renamed floor to {{name}}",
	"floor.last":            "The last floor was cleared instead of deleted",
	"canvas.loading":        "Loading floors...",
	"canvas.error":          "Error: {{error}}",
	"form.place":            "Place",
	"form.rack":             "Rack",
	"form.rename":           "Rename",
	"form.confirm":          "Confirm",
	"mode.select":           "Select",
	"mode.place-device":     "Place {{device}}",
	"mode.draw-cable":       "Draw cable ({{points}} pts)",
	"scene.saved":           "Saved {{floors}} floor(s)",
	"scene.save_failed":     "Save failed: {{error}}",
	"scene.unsaved":         "Unsaved changes. Press s to save or Q to discard.",
	"scene.nothing_undo":    "Nothing to undo",
	"scene.nothing_redo":    "Nothing to redo",
	"scene.cleared":         "Floor cleared",
	"scene.deleted":         "Deleted selection",
	"scene.dirty":           "● unsaved",
	"scene.need_selection":  "Select a device or cable first",
	"scene.clear_confirm":   "Clear every device and cable on this floor?",
	"scene.installed_count": "{{installed}}/{{total}} installed",
	"floor.delete_confirm":  "Delete floor \"{{name}}\"?",
	"cable.summary":         "Cable {{id}} ({{points}} pts)",
	"cable.auto_color":      "auto colour",
	"rack.added":            "Added to rack",
	"rack.removed":          "Removed from rack",
	"rack.invalid":          "Select a device, then a rack",
	"rack.already_mounted":  "Cannot mount: the device is already in a rack",
	"rack.member_of":        "in rack {{rack}}",
	"rack.mounted_count":    "({{count}} mounted)",
	"status.title":          "Installation status",
	"status.updated":        "Status set to {{status}}",
	"status.photo":          "Photo URI",
	"status.note":           "Note",
	"status.materials":      "Materials (name=qty, comma separated)",
	"status.pending":        "Pending",
	"status.installed":      "Installed",
	"status.cannot_install": "Cannot install",
	"status.unset":          "Unset",
	"device.cctv":           "CCTV",
	"device.dome_camera":    "Dome camera",
	"device.ptz_camera":     "PTZ camera",
	"device.bullet_camera":  "Bullet camera",
	"device.nvr":            "NVR",
	"device.router":         "Router",
	"device.switch":         "Switch",
	"device.access_point":   "Access point",
	"device.patch_panel":    "Patch panel",
	"device.ups":            "UPS",
	"device.motion_sensor":  "Motion sensor",
	"device.smoke_detector": "Smoke detector",
	"device.door_sensor":    "Door sensor",
	"device.card_reader":    "Card reader",
	"device.keypad":         "Keypad",
	"device.electric_lock":  "Electric lock",
	"device.intercom":       "Intercom",
	"device.rack":           "Rack",
	"help.canvas":           "click place/select · drag move/pan · wheel zoom · c cable · enter finish · u/r undo/redo · del delete · t status · s save · [ ] floors · q back",
}

// DeviceLabel is the display name for a device type.
func DeviceLabel(t domain.DeviceType) string {
	return T("device."+string(t), nil)
}

// StatusLabel is the display name for an install status.
func StatusLabel(s domain.InstallStatus) string {
	if s == domain.StatusUnset {
		return T("status.unset", nil)
	}
	return T("status."+string(s), nil)
}

package dlc

import "dlccontrol/internal/models"

// Parameter paths on the controller's command line.
const (
	pathUserLevel      = "ul"
	pathChangeUL       = "change-ul"
	pathEmission       = "emission"
	pathEmissionButton = "emission-button-enabled"

	pathCurrentEnabled = "laser1:dl:cc:enabled"
	pathCurrentClip    = "laser1:dl:cc:current-clip"
	pathVoltageMin     = "laser1:dl:pc:voltage-min"
	pathVoltageMax     = "laser1:dl:pc:voltage-max"

	pathWavelengthSet = "laser1:ctl:wavelength-set"
	pathWavelengthAct = "laser1:ctl:wavelength-act"
	pathWavelengthMin = "laser1:ctl:wavelength-min"
	pathWavelengthMax = "laser1:ctl:wavelength-max"

	pathTempSet    = "laser1:dl:tc:temp-set"
	pathTempAct    = "laser1:dl:tc:temp-act"
	pathTempSetMin = "laser1:dl:tc:temp-set-min"
	pathTempSetMax = "laser1:dl:tc:temp-set-max"

	pathScanEnabled       = "laser1:scan:enabled"
	pathScanOutputChannel = "laser1:scan:output-channel"
	pathScanFrequency     = "laser1:scan:frequency"
	pathScanAmplitude     = "laser1:scan:amplitude"
	pathScanOffset        = "laser1:scan:offset"
	pathScanStart         = "laser1:scan:start"
	pathScanEnd           = "laser1:scan:end"
)

// remotePath returns the external-input parameter of a remote unit.
func remotePath(unit models.RemoteUnit, leaf string) string {
	return "laser1:dl:" + string(unit) + ":external-input:" + leaf
}

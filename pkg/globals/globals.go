package globals

// FirmwareVersion is set at build time via -ldflags
var FirmwareVersion = "dev"

// Writable data directory
var DataDir = "/data"

// Firmware data
var FirmwareDataDir = DataDir + "/.firmware-data"

// Config
var ConfigPath = FirmwareDataDir + "/config.json"

// Logs
var LogsPath = FirmwareDataDir + "/logs.json"

// File-backed stand-in for the EEPROM when no I2C part is fitted
var BlobPath = FirmwareDataDir + "/eeprom.bin"

// Seconds the display stays on before the box powers down
const DisplayTime = 7

// Attempts a fresh box starts with
const DefaultTries = 50

// Attempt history
var HistoryPath = FirmwareDataDir + "/attempts.json"

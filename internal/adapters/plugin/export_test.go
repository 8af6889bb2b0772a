package plugin

var ToStatus = toStatus

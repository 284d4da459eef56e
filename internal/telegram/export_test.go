package telegram

// SendTotal exposes the delivery result counter to the test package.
var SendTotal = sendTotal

package att

// Attribute Protocol opcodes.
const (
	opErrorResponse            = 0x01 // Error Response
	opExchangeMTURequest       = 0x02 // Exchange MTU Request
	opExchangeMTUResponse      = 0x03 // Exchange MTU Response
	opFindInfoRequest          = 0x04 // Find Information Request
	opFindInfoResponse         = 0x05 // Find Information Response
	opFindByTypeValueRequest   = 0x06 // Find By Type Value Request
	opFindByTypeValueResponse  = 0x07 // Find By Type Value Response
	opReadByTypeRequest        = 0x08 // Read By Type Request
	opReadByTypeResponse       = 0x09 // Read By Type Response
	opReadRequest              = 0x0a // Read Request
	opReadResponse             = 0x0b // Read Response
	opReadBlobRequest          = 0x0c // Read Blob Request
	opReadBlobResponse         = 0x0d // Read Blob Response
	opReadMultipleRequest      = 0x0e // Read Multiple Request
	opReadMultipleResponse     = 0x0f // Read Multiple Response
	opReadByGroupTypeRequest   = 0x10 // Read By Group Type Request
	opReadByGroupTypeResponse  = 0x11 // Read By Group Type Response
	opWriteRequest             = 0x12 // Write Request
	opWriteResponse            = 0x13 // Write Response
	opPrepareWriteRequest      = 0x16 // Prepare Write Request
	opPrepareWriteResponse     = 0x17 // Prepare Write Response
	opExecuteWriteRequest      = 0x18 // Execute Write Request
	opExecuteWriteResponse     = 0x19 // Execute Write Response
	opHandleValueNotification  = 0x1b // Handle Value Notification
	opHandleValueIndication    = 0x1d // Handle Value Indication
	opHandleValueConfirmation  = 0x1e // Handle Value Confirmation
	opReadMultipleVarRequest   = 0x20 // Read Multiple Variable Length Request
	opReadMultipleVarResponse  = 0x21 // Read Multiple Variable Length Response
	opMultipleHandleValueNotif = 0x23 // Handle Multiple Value Notification
	opWriteCommand             = 0x52 // Write Command
	opSignedWriteCommand       = 0xd2 // Signed Write Command
)

// CID of the fixed LE attribute channel.
const CIDAttribute = 0x0004

// signatureLen is the sign counter plus the MAC trailing a Signed Write
// Command.
const signatureLen = 12

// DefaultMaxPendingReads bounds the read requests kept per connection
// while waiting for their responses.
const DefaultMaxPendingReads = 256

package hci

// HCI Packet types
const (
	PktTypeCommand uint8 = 0x01
	PktTypeACLData uint8 = 0x02
	PktTypeSCOData uint8 = 0x03
	PktTypeEvent   uint8 = 0x04
	PktTypeISOData uint8 = 0x05
)

// Packet boundary flags of HCI ACL Data Packet [Vol 2, Part E, 5.4.2].
const (
	pbfHostToControllerStart = 0x00 // Start of a non-automatically-flushable from host to controller.
	pbfContinuing            = 0x01 // Continuing fragment.
	pbfControllerToHostStart = 0x02 // Start of a non-automatically-flushable from controller to host.
	pbfCompleteL2CAPPDU      = 0x03 // A automatically flushable complete PDU. (Not used in LE-U).
)

// Events the demultiplexer follows.
const (
	evtDisconnectionComplete = 0x05
	evtCommandComplete       = 0x0e
	evtLEMeta                = 0x3e

	subevtLEConnectionComplete         = 0x01
	subevtLEEnhancedConnectionComplete = 0x0a
)

const opReadBDADDR = 0x1009 // Read BD_ADDR

var pktTypeNames = map[uint8]string{
	PktTypeCommand: "command",
	PktTypeACLData: "acl",
	PktTypeSCOData: "sco",
	PktTypeEvent:   "event",
	PktTypeISOData: "iso",
}

// PktTypeName names an HCI packet type.
func PktTypeName(t uint8) string {
	if n, ok := pktTypeNames[t]; ok {
		return n
	}
	return "unknown"
}

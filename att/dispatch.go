package att

import (
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
)

type handlerFunc func(d *Decoder, f *frame.Frame, p *display.Printer)

// attDispatcher describes one opcode. A nil handler marks an opcode whose
// body is not decoded. fixed opcodes need exactly size payload bytes, the
// others at least size.
type attDispatcher struct {
	desc    string
	handler handlerFunc
	size    int
	fixed   bool
}

var dispatcher map[byte]attDispatcher

func init() {
	dispatcher = map[byte]attDispatcher{
		opErrorResponse:            {"Error Response", (*Decoder).errorResponse, 4, true},
		opExchangeMTURequest:       {"Exchange MTU Request", (*Decoder).exchangeMTURequest, 2, true},
		opExchangeMTUResponse:      {"Exchange MTU Response", (*Decoder).exchangeMTUResponse, 2, true},
		opFindInfoRequest:          {"Find Information Request", (*Decoder).handleRange, 4, true},
		opFindInfoResponse:         {"Find Information Response", (*Decoder).findInfoResponse, 5, false},
		opFindByTypeValueRequest:   {"Find By Type Value Request", (*Decoder).findByTypeValueRequest, 6, false},
		opFindByTypeValueResponse:  {"Find By Type Value Response", (*Decoder).findByTypeValueResponse, 4, false},
		opReadByTypeRequest:        {"Read By Type Request", (*Decoder).readByTypeRequest, 6, false},
		opReadByTypeResponse:       {"Read By Type Response", (*Decoder).readByTypeResponse, 3, false},
		opReadRequest:              {"Read Request", (*Decoder).readRequest, 2, true},
		opReadResponse:             {"Read Response", (*Decoder).readResponse, 0, false},
		opReadBlobRequest:          {"Read Blob Request", (*Decoder).readBlobRequest, 4, true},
		opReadBlobResponse:         {"Read Blob Response", (*Decoder).dump, 0, false},
		opReadMultipleRequest:      {"Read Multiple Request", (*Decoder).readMultipleRequest, 4, false},
		opReadMultipleResponse:     {"Read Multiple Response", nil, 0, false},
		opReadByGroupTypeRequest:   {"Read By Group Type Request", (*Decoder).readByGroupTypeRequest, 6, false},
		opReadByGroupTypeResponse:  {"Read By Group Type Response", (*Decoder).readByGroupTypeResponse, 4, false},
		opWriteRequest:             {"Write Request", (*Decoder).write, 2, false},
		opWriteResponse:            {"Write Response", (*Decoder).empty, 0, true},
		opPrepareWriteRequest:      {"Prepare Write Request", (*Decoder).prepareWriteRequest, 4, false},
		opPrepareWriteResponse:     {"Prepare Write Response", (*Decoder).prepareWriteResponse, 4, false},
		opExecuteWriteRequest:      {"Execute Write Request", (*Decoder).executeWriteRequest, 1, true},
		opExecuteWriteResponse:     {"Execute Write Response", nil, 0, false},
		opHandleValueNotification:  {"Handle Value Notification", (*Decoder).notify, 2, false},
		opHandleValueIndication:    {"Handle Value Indication", (*Decoder).notify, 2, false},
		opHandleValueConfirmation:  {"Handle Value Confirmation", (*Decoder).empty, 0, true},
		opReadMultipleVarRequest:   {"Read Multiple Request Variable Length", (*Decoder).readMultipleRequest, 4, false},
		opReadMultipleVarResponse:  {"Read Multiple Response Variable Length", (*Decoder).multipleValues, 4, false},
		opMultipleHandleValueNotif: {"Handle Multiple Value Notification", (*Decoder).multipleValues, 4, false},
		opWriteCommand:             {"Write Command", (*Decoder).write, 2, false},
		opSignedWriteCommand:       {"Signed Write Command", (*Decoder).signedWrite, 14, false},
	}
}

// OpcodeName returns the name of an ATT opcode, "Unknown" for opcodes
// outside the protocol.
func OpcodeName(op byte) string {
	if e, ok := dispatcher[op]; ok {
		return e.desc
	}
	return "Unknown"
}

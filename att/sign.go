package att

import (
	"bytes"
	"crypto/aes"
	"encoding/binary"

	"github.com/aead/cmac"
	"github.com/rigado/attmon/display"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/sliceops"
)

// aesCMAC computes AES-CMAC over little-endian key and msg, returning the
// MAC little-endian as well.
func aesCMAC(key, msg []byte) ([]byte, error) {
	tmp := sliceops.SwapBuf(key)
	mCipher, err := aes.NewCipher(tmp)
	if err != nil {
		return nil, err
	}

	msgMsb := sliceops.SwapBuf(msg)

	mMac, err := cmac.New(mCipher)
	if err != nil {
		return nil, err
	}

	mMac.Write(msgMsb)

	return sliceops.SwapBuf(mMac.Sum(nil)), nil
}

// verify checks the signature of a Signed Write Command when the CSRK of
// the signing device is known. pdu is the PDU without its opcode.
func (d *Decoder) verify(f *frame.Frame, pdu []byte, p *display.Printer) {
	c, ok := d.conns[f.Conn]
	if !ok {
		return
	}

	signer := c.local
	if f.In {
		signer = c.peer
	}
	if signer == nil {
		return
	}
	key, ok := d.keys[signer.String()]
	if !ok {
		return
	}

	n := len(pdu) - 8
	counter := binary.LittleEndian.Uint32(pdu[n-4 : n])
	p.Field("Sign counter", "%d", counter)

	m := append([]byte{opSignedWriteCommand}, pdu[:n]...)
	mac, err := aesCMAC(key, m)
	if err != nil {
		d.logger.Errorf("signature check failed: %v", err)
		return
	}

	if bytes.Equal(mac[8:], pdu[n:]) {
		p.Field("Signature check", "valid")
		return
	}
	p.Field("Signature check", "invalid")
}

package att

import (
	"github.com/rigado/attmon"
	"github.com/rigado/attmon/frame"
	"github.com/rigado/attmon/gattdb"
)

// connData is what the decoder keeps per connection: the database served
// by the local adapter (ldb), the peer's database (rdb) and the reads still
// waiting for their responses.
type connData struct {
	local, peer attmon.Addr

	ldb, rdb             *gattdb.DB
	ldbLoaded, rdbLoaded bool

	reads pendingReads
}

func newConnData(local, peer attmon.Addr) *connData {
	return &connData{
		local: local,
		peer:  peer,
		ldb:   gattdb.New(),
		rdb:   gattdb.New(),
	}
}

// load tries each empty database once, as soon as the addresses needed to
// locate it are known.
func (d *Decoder) load(c *connData) {
	if d.cache == nil || c.local == nil {
		return
	}

	if c.ldb.IsEmpty() && !c.ldbLoaded {
		c.ldbLoaded = true
		if err := c.ldb.Load(d.cache, attmon.LocalAttributesPath(c.local)); err != nil {
			d.logger.Debugf("%v", err)
		} else {
			d.logger.Debugf("local database of %v: %d attributes", c.local, c.ldb.Len())
		}
	}

	if c.rdb.IsEmpty() && !c.rdbLoaded && c.peer != nil {
		c.rdbLoaded = true
		if err := c.rdb.Load(d.cache, attmon.PeerCachePath(c.local, c.peer)); err != nil {
			d.logger.Debugf("%v", err)
		} else {
			d.logger.Debugf("database of %v: %d attributes", c.peer, c.rdb.Len())
		}
	}
}

// db picks the database a handle in f refers to. Requests received from
// the controller address the local database and requests sent to it the
// peer's. Responses go the other way around.
func (c *connData) db(in, rsp bool) *gattdb.DB {
	if in == rsp {
		return c.rdb
	}
	return c.ldb
}

// attribute resolves handle for the PDU in f. rsp selects the database as
// seen from the side answering.
func (d *Decoder) attribute(f *frame.Frame, handle uint16, rsp bool) *attmon.Attribute {
	c := d.conn(f.Conn)
	d.load(c)
	return c.db(f.In, rsp).Attribute(handle)
}

package vorbis_test

import (
	"fmt"
	"log"

	"github.com/thesyncim/oggtag/vorbis"
)

func ExampleBuildCommentPacket() {
	pkt := vorbis.BuildCommentPacket(vorbis.Comments{
		Vendor: "oggtag",
		Tags:   []vorbis.Tag{{Key: "ARTIST", Value: "Kenny Beltrey"}, {Key: "DATE", Value: "2002"}},
	})

	p, err := vorbis.Parse(pkt)
	if err != nil {
		log.Fatal(err)
	}
	c, _ := p.Comments()
	artist, _ := c.Get("artist")
	fmt.Println(p.Type(), c.Vendor, artist, len(c.Tags))
	// Output: comment oggtag Kenny Beltrey 2
}

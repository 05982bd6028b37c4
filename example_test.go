package wire_test

import (
	"bytes"
	"fmt"
	"log"

	"github.com/chaisql/wire"
)

func Example() {
	var buf bytes.Buffer

	out := wire.NewOutputWriter(&buf, nil)
	if _, err := out.WriteVarInt32(300, true); err != nil {
		log.Fatal(err)
	}
	if err := out.WriteString("hello"); err != nil {
		log.Fatal(err)
	}
	if err := out.WriteInt32(-1); err != nil {
		log.Fatal(err)
	}
	if err := out.Flush(); err != nil {
		log.Fatal(err)
	}

	in := wire.NewInputReader(&buf, nil)
	v, err := in.ReadVarInt32(true)
	if err != nil {
		log.Fatal(err)
	}
	s, err := in.ReadString()
	if err != nil {
		log.Fatal(err)
	}
	i, err := in.ReadInt32()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(v, s, i)
	// Output: 300 hello -1
}

func ExampleOutput_ToBytes() {
	out := wire.NewOutput(&wire.Options{MaxBufferSize: wire.Unlimited})
	_ = out.WriteString("abc")
	_ = out.WriteInt16(1)

	fmt.Printf("% x\n", out.ToBytes())
	// Output: 61 62 e3 01 00
}

func ExampleOutput_WriteVarInt64() {
	out := wire.NewOutput(nil)
	n, err := out.WriteVarInt64(-2368365495612416452, false)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(n, wire.VarInt64Len(-2368365495612416452, false))
	// Output: 9 9
}

func ExampleInputChunked_NextChunk() {
	var buf bytes.Buffer

	out := wire.NewOutputChunked(&buf, nil)
	_ = out.WriteString("old field")
	_ = out.EndChunk()
	_ = out.WriteString("new field")
	_ = out.EndChunk()

	in := wire.NewInputChunked(&buf, nil)
	if err := in.NextChunk(); err != nil {
		log.Fatal(err)
	}
	s, err := in.ReadString()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(s)
	// Output: new field
}

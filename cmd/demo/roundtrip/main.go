package main

import (
	"fmt"

	"Ultratone/pkg/device"
	"Ultratone/pkg/frame"
	"Ultratone/pkg/link"
	"Ultratone/pkg/modem"
)

func main() {
	cfg := modem.DefaultConfig()

	modulator := modem.NewModulator(cfg)
	demod, err := modem.NewDemodulator(cfg)
	if err != nil {
		panic(err)
	}

	tx := link.NewTransmitter(modulator)
	rx := link.NewReceiver(demod, frame.DefaultFrameDecoder())
	loop := &device.Loopback{}

	msg := frame.NewTextMessage(frame.NewSequenceGenerator().Next(), []byte("hello over ultrasound"))
	if err := tx.Send(msg, loop); err != nil {
		panic(err)
	}

	samples := make([]float32, loop.Buffered())
	loop.Read(samples)

	received := rx.Feed(samples)
	if len(received) == 0 {
		fmt.Println("no message decoded")
		return
	}

	fmt.Printf("decoded message: kind=%s payload=%q\n", received[0].Header.Kind, received[0].Payload)
}

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"go.uber.org/zap"

	"github.com/wippyai/abio"
)

// readUDPPayloads returns the UDP payloads of a pcap capture. A non-zero port
// keeps only datagrams sent to that destination port.
func readUDPPayloads(r io.Reader, port int) ([][]byte, error) {
	reader, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}

	source := gopacket.NewPacketSource(reader, reader.LinkType())

	var payloads [][]byte
	for {
		packet, err := source.NextPacket()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read capture: %w", err)
		}
		udpLayer := packet.Layer(layers.LayerTypeUDP)
		if udpLayer == nil {
			continue
		}
		udp, ok := udpLayer.(*layers.UDP)
		if !ok || len(udp.Payload) == 0 {
			continue
		}
		if port != 0 && int(udp.DstPort) != port {
			continue
		}
		payloads = append(payloads, udp.Payload)
	}
	return payloads, nil
}

// runCapture decodes the same values from every UDP payload in a capture.
// Payloads that fail to decode are reported and skipped.
func runCapture(w io.Writer, logger *zap.Logger, capture io.Reader, port int, typeName string, offset, count int, codec abio.Codec) error {
	dec, ok := lookupType(typeName)
	if !ok {
		return fmt.Errorf("unknown type %q (want one of %s)", typeName, typeList())
	}

	payloads, err := readUDPPayloads(capture, port)
	if err != nil {
		return err
	}

	decoded := 0
	for i, payload := range payloads {
		values, _, err := dec.decode(abio.NewSource(payload), offset, count, codec)
		if err != nil {
			logger.Debug("payload skipped",
				zap.Int("packet", i),
				zap.Int("bytes", len(payload)),
				zap.Error(err))
			fmt.Fprintf(w, "packet %d: %s\n", i, errorKind(err))
			continue
		}
		decoded++
		fmt.Fprintf(w, "packet %d: %v\n", i, values)
	}

	fmt.Fprintf(w, "decoded %d of %d payloads\n", decoded, len(payloads))
	return nil
}

// Package discovery releva las impresoras alcanzables desde el equipo: un
// barrido TCP de la subred /24 local contra el puerto raw y la lista de
// colas registradas en CUPS.
package discovery

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/qbitsinc/orderwise-printer/internal/domain/entity"
)

// concurrencia máxima del barrido; 254 hosts con timeouts cortos
const scanParallelism = 64

// LocalIP determina la IP local de salida sin emitir tráfico: el socket UDP
// se conecta pero nunca escribe.
func LocalIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", fmt.Errorf("discovery: ip local: %w", err)
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", fmt.Errorf("discovery: dirección local inesperada %v", conn.LocalAddr())
	}
	return addr.IP.String(), nil
}

// ScanNetwork recorre la subred /24 de la IP local probando el puerto raw de
// cada host. Devuelve las impresoras de red que aceptaron la conexión,
// ordenadas por dirección.
func ScanNetwork(ctx context.Context, localIP string, port int, timeout time.Duration) ([]entity.Printer, error) {
	prefix, err := subnetPrefix(localIP)
	if err != nil {
		return nil, err
	}

	var (
		mu    sync.Mutex
		found []entity.Printer
	)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanParallelism)

	for host := 1; host <= 254; host++ {
		addr := fmt.Sprintf("%s.%d", prefix, host)
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			dialer := net.Dialer{Timeout: timeout}
			conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(addr, strconv.Itoa(port)))
			if err != nil {
				return nil
			}
			conn.Close()
			mu.Lock()
			found = append(found, entity.Printer{
				Name:       addr,
				Identifier: addr,
				Kind:       entity.PrinterNetwork,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Identifier < found[j].Identifier })
	return found, nil
}

// LocalQueues lista las colas de impresión registradas en CUPS vía lpstat -p.
// Si CUPS no está instalado devuelve la lista vacía sin error.
func LocalQueues(ctx context.Context) ([]entity.Printer, error) {
	out, err := exec.CommandContext(ctx, "lpstat", "-p").Output()
	if err != nil {
		return nil, nil
	}
	return parseLpstat(out), nil
}

// parseLpstat extrae los nombres de cola de la salida de lpstat -p, que
// lista una cola por línea con el formato "printer NOMBRE ...".
func parseLpstat(out []byte) []entity.Printer {
	var printers []entity.Printer
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 || fields[0] != "printer" {
			continue
		}
		printers = append(printers, entity.Printer{
			Name:       fields[1],
			Identifier: fields[1],
			Kind:       entity.PrinterLocal,
		})
	}
	return printers
}

// subnetPrefix devuelve los tres primeros octetos de una IPv4.
func subnetPrefix(ip string) (string, error) {
	parts := strings.Split(ip, ".")
	if len(parts) != 4 {
		return "", fmt.Errorf("discovery: ip no es IPv4: %q", ip)
	}
	return strings.Join(parts[:3], "."), nil
}

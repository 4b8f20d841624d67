package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/sangkips/smartventory-api/internal/domain/entity"
	"github.com/sangkips/smartventory-api/pkg/notify"
	"github.com/sangkips/smartventory-api/pkg/pdf"
	"github.com/sangkips/smartventory-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturePrinter struct {
	data []byte
	err  error
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	p.data = append([]byte(nil), data...)
	return p.err
}

func (p *capturePrinter) IsConnected(context.Context) bool { return p.err == nil }

func (p *capturePrinter) Kind() string { return printer.KindNetwork }

type fakeRenderer struct {
	last pdf.BillData
}

func (r *fakeRenderer) RenderBill(_ context.Context, data pdf.BillData) ([]byte, error) {
	r.last = data
	return []byte("%PDF-1.3 " + data.BillNumber), nil
}

type recordingSender struct {
	channel string
	sent    []notify.Message
}

func (s *recordingSender) Channel() string { return s.channel }

func (s *recordingSender) Send(_ context.Context, msg notify.Message) (*notify.Delivery, error) {
	s.sent = append(s.sent, msg)
	return &notify.Delivery{Channel: s.channel, To: msg.To, Reference: "ref-1", SentAt: testNow}, nil
}

func TestPrinterService_PrintBill(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	p := &capturePrinter{}
	svc := NewPrinterService(p, NewBillService(env.bills, time.UTC), env.settings, printer.Width58mm, zap.NewNop())
	ctx := context.Background()

	receipt, err := svc.PrintBill(ctx, "INV-240310-001")
	require.NoError(t, err)
	assert.Equal(t, "My Business", receipt.Header.StoreName)
	assert.True(t, receipt.SplitTax)
	require.Len(t, receipt.Items, 1)
	assert.Equal(t, "19998", receipt.Items[0].Total.String())

	out := string(p.data)
	assert.Contains(t, out, "INV-240310-001")
	assert.Contains(t, out, "CGST:")
	assert.Contains(t, out, "1799.82")
	assert.Contains(t, out, "23597.64")
	assert.Contains(t, out, "@ 9999.00 each")

	_, err = svc.PrintBill(ctx, "INV-000000-000")
	requireAppError(t, err, http.StatusNotFound)

	p.err = errors.New("connection refused")
	_, err = svc.PrintBill(ctx, "INV-240310-001")
	requireAppError(t, err, http.StatusInternalServerError)

	status := svc.GetStatus(ctx)
	assert.True(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, printer.KindNetwork, status.Type)
}

func TestPrinterService_TestPrint(t *testing.T) {
	env := newTestEnv(t)
	p := &capturePrinter{}
	svc := NewPrinterService(p, NewBillService(env.bills, time.UTC), env.settings, printer.Width80mm, zap.NewNop())

	receipt, err := svc.TestPrint(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PRINTER TEST", receipt.Header.StoreName)
	assert.True(t, bytes.HasPrefix(p.data, []byte{printer.ESC, '@'}))
	assert.Contains(t, string(p.data), "GST:")
}

func TestFormatReceipt_SingleTaxLine(t *testing.T) {
	r := &entity.Receipt{
		Header:     entity.ReceiptHeader{StoreName: "Shop", GSTNumber: "22AAAAA0000A1Z5"},
		BillNumber: "INV-240310-001",
		SubTotal:   entity.MustMoney("100"),
		Tax:        entity.MustMoney("18"),
		Total:      entity.MustMoney("118"),
	}
	out := string(FormatReceipt(r, printer.Width58mm))
	assert.Contains(t, out, "GSTIN: 22AAAAA0000A1Z5")
	assert.Contains(t, out, "GST:")
	assert.NotContains(t, out, "CGST:")
	assert.Contains(t, out, "118.00")
}

func TestDocumentService_RenderBill(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	renderer := &fakeRenderer{}
	svc := NewDocumentService(renderer, NewBillService(env.bills, time.UTC), env.settings, env.catalog)

	doc, err := svc.RenderBill(context.Background(), "INV-240310-001")
	require.NoError(t, err)
	assert.Equal(t, "inv-240310-001.pdf", doc.FileName)
	assert.True(t, bytes.HasPrefix(doc.Data, []byte("%PDF")))

	data := renderer.last
	require.Len(t, data.Items, 1)
	assert.Equal(t, "84716090", data.Items[0].HSNCode)
	assert.Equal(t, "19998.00", data.Items[0].Amount)
	require.Len(t, data.Taxes, 2)
	assert.Equal(t, "CGST", data.Taxes[0].Label)
	assert.Equal(t, "1799.82", data.Taxes[0].Amount)
	assert.Equal(t, "23597.64", data.Total)
}

func TestShareService_ShareBill(t *testing.T) {
	env := newTestEnv(t)
	seedHistory(t, env)
	bills := NewBillService(env.bills, time.UTC)
	docs := NewDocumentService(&fakeRenderer{}, bills, env.settings, env.catalog)
	email := &recordingSender{channel: notify.ChannelEmail}
	registry := notify.NewRegistry(notify.NewWhatsAppSimulator(zap.NewNop(), 0), email)
	svc := NewShareService(registry, docs, bills, env.settings, zap.NewNop())
	ctx := context.Background()

	assert.Equal(t, []string{"email", "whatsapp"}, svc.Channels())

	delivery, err := svc.ShareBill(ctx, &ShareBillInput{Number: "INV-240310-001"})
	require.NoError(t, err)
	assert.Equal(t, notify.ChannelWhatsApp, delivery.Channel)
	assert.Equal(t, "+919898989898", delivery.To)
	assert.True(t, delivery.Simulated)

	_, err = svc.ShareBill(ctx, &ShareBillInput{Number: "INV-240310-001", To: "12345"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.ShareBill(ctx, &ShareBillInput{Number: "INV-240310-001", Channel: "sms"})
	requireAppError(t, err, http.StatusBadRequest)

	_, err = svc.ShareBill(ctx, &ShareBillInput{Number: "INV-240310-001", Channel: "email"})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.ShareBill(ctx, &ShareBillInput{Number: "INV-240310-001", Channel: "Email", To: "john@example.com"})
	require.NoError(t, err)
	require.Len(t, email.sent, 1)
	msg := email.sent[0]
	assert.Equal(t, "Invoice INV-240310-001 from My Business", msg.Subject)
	assert.Contains(t, msg.Body, "Dear John Doe")
	assert.Contains(t, msg.Body, "Rs. 23597.64")
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
}

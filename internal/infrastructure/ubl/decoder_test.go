package ubl_test

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/infrastructure/ubl"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

const facturaXML = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
         xmlns:ext="urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
         xmlns:ds="http://www.w3.org/2000/09/xmldsig#">
  <ext:UBLExtensions>
    <ext:UBLExtension>
      <ext:ExtensionContent>
        <ds:Signature Id="SignSUNAT">
          <ds:SignedInfo>
            <ds:Reference URI="">
              <ds:DigestValue>qZ3s9Fh2kdl0kPz4XyA1b0c=</ds:DigestValue>
            </ds:Reference>
          </ds:SignedInfo>
          <ds:SignatureValue>firma</ds:SignatureValue>
        </ds:Signature>
      </ext:ExtensionContent>
    </ext:UBLExtension>
  </ext:UBLExtensions>
  <cbc:UBLVersionID>2.1</cbc:UBLVersionID>
  <cbc:ID>F001-00000123</cbc:ID>
  <cbc:IssueDate>2024-03-15</cbc:IssueDate>
  <cbc:DueDate>2024-04-14</cbc:DueDate>
  <cbc:InvoiceTypeCode listID="0101">01</cbc:InvoiceTypeCode>
  <cbc:Note languageLocaleID="1000">SON: CIENTO DIECIOCHO CON 00/100 SOLES</cbc:Note>
  <cbc:Note>Orden de compra OC-45</cbc:Note>
  <cbc:DocumentCurrencyCode>PEN</cbc:DocumentCurrencyCode>
  <cac:AccountingSupplierParty>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeID="6">20131312955</cbc:ID></cac:PartyIdentification>
      <cac:PartyName><cbc:Name>COMERCIAL ANDINA</cbc:Name></cac:PartyName>
      <cac:PartyLegalEntity><cbc:RegistrationName>COMERCIAL ANDINA S.A.C.</cbc:RegistrationName></cac:PartyLegalEntity>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:AccountingCustomerParty>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeID="6">20100070970</cbc:ID></cac:PartyIdentification>
      <cac:PartyLegalEntity><cbc:RegistrationName>SUPERMERCADOS PERUANOS S.A.</cbc:RegistrationName></cac:PartyLegalEntity>
    </cac:Party>
  </cac:AccountingCustomerParty>
  <cac:TaxTotal>
    <cbc:TaxAmount currencyID="PEN">18.00</cbc:TaxAmount>
    <cac:TaxSubtotal>
      <cbc:TaxableAmount currencyID="PEN">100.00</cbc:TaxableAmount>
      <cbc:TaxAmount currencyID="PEN">18.00</cbc:TaxAmount>
      <cac:TaxCategory><cac:TaxScheme><cbc:ID>1000</cbc:ID><cbc:Name>IGV</cbc:Name></cac:TaxScheme></cac:TaxCategory>
    </cac:TaxSubtotal>
  </cac:TaxTotal>
  <cac:LegalMonetaryTotal>
    <cbc:LineExtensionAmount currencyID="PEN">100.00</cbc:LineExtensionAmount>
    <cbc:TaxInclusiveAmount currencyID="PEN">118.00</cbc:TaxInclusiveAmount>
    <cbc:PayableAmount currencyID="PEN">118.00</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
  <cac:InvoiceLine>
    <cbc:ID>1</cbc:ID>
    <cbc:InvoicedQuantity unitCode="NIU">2</cbc:InvoicedQuantity>
    <cbc:LineExtensionAmount currencyID="PEN">60.00</cbc:LineExtensionAmount>
    <cac:PricingReference>
      <cac:AlternativeConditionPrice>
        <cbc:PriceAmount currencyID="PEN">35.40</cbc:PriceAmount>
        <cbc:PriceTypeCode>01</cbc:PriceTypeCode>
      </cac:AlternativeConditionPrice>
    </cac:PricingReference>
    <cac:TaxTotal>
      <cbc:TaxAmount currencyID="PEN">10.80</cbc:TaxAmount>
      <cac:TaxSubtotal>
        <cbc:TaxAmount currencyID="PEN">10.80</cbc:TaxAmount>
        <cac:TaxCategory>
          <cbc:TaxExemptionReasonCode>10</cbc:TaxExemptionReasonCode>
          <cac:TaxScheme><cbc:ID>1000</cbc:ID></cac:TaxScheme>
        </cac:TaxCategory>
      </cac:TaxSubtotal>
    </cac:TaxTotal>
    <cac:Item>
      <cbc:Description>ACEITE VEGETAL</cbc:Description>
      <cbc:Description>1 LITRO</cbc:Description>
      <cac:SellersItemIdentification><cbc:ID>ACE-001</cbc:ID></cac:SellersItemIdentification>
    </cac:Item>
    <cac:Price><cbc:PriceAmount currencyID="PEN">30.00</cbc:PriceAmount></cac:Price>
  </cac:InvoiceLine>
  <cac:InvoiceLine>
    <cbc:ID>2</cbc:ID>
    <cbc:InvoicedQuantity unitCode="KGM">4</cbc:InvoicedQuantity>
    <cbc:LineExtensionAmount currencyID="PEN">40.00</cbc:LineExtensionAmount>
    <cac:TaxTotal><cbc:TaxAmount currencyID="PEN">7.20</cbc:TaxAmount></cac:TaxTotal>
    <cac:Item><cbc:Description>ARROZ</cbc:Description></cac:Item>
    <cac:Price><cbc:PriceAmount currencyID="PEN">10.00</cbc:PriceAmount></cac:Price>
  </cac:InvoiceLine>
</Invoice>`

const boletaXML = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>B002-0000045</cbc:ID>
  <cbc:IssueDate>2024-03-20</cbc:IssueDate>
  <cbc:InvoiceTypeCode>03</cbc:InvoiceTypeCode>
  <cbc:Note>SON CINCUENTA Y NUEVE CON 00/100 SOLES</cbc:Note>
  <cac:AccountingSupplierParty>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeID="6">20131312955</cbc:ID></cac:PartyIdentification>
      <cac:PartyName><cbc:Name>BODEGA SAN JUAN</cbc:Name></cac:PartyName>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:AccountingCustomerParty>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeID="1">45678912</cbc:ID></cac:PartyIdentification>
      <cac:PartyLegalEntity><cbc:RegistrationName>JUAN PEREZ</cbc:RegistrationName></cac:PartyLegalEntity>
    </cac:Party>
  </cac:AccountingCustomerParty>
  <cac:PaymentTerms><cbc:PaymentDueDate>2024-03-30</cbc:PaymentDueDate></cac:PaymentTerms>
  <cac:TaxTotal>
    <cbc:TaxAmount currencyID="PEN">9.00</cbc:TaxAmount>
    <cac:TaxSubtotal>
      <cbc:TaxableAmount currencyID="PEN">50.00</cbc:TaxableAmount>
      <cbc:TaxAmount currencyID="PEN">9.00</cbc:TaxAmount>
      <cac:TaxCategory><cac:TaxScheme><cbc:ID>1000</cbc:ID></cac:TaxScheme></cac:TaxCategory>
    </cac:TaxSubtotal>
  </cac:TaxTotal>
  <cac:LegalMonetaryTotal>
    <cbc:PayableAmount currencyID="PEN">59.00</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
</Invoice>`

// Prefijos no estándar: el decodificador trabaja por nombre local.
const notaCreditoXML = `<?xml version="1.0" encoding="UTF-8"?>
<ns0:CreditNote xmlns:ns0="urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
                xmlns:a="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
                xmlns:b="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <b:ID>FC01-0007</b:ID>
  <b:IssueDate>2024-03-22</b:IssueDate>
  <b:DocumentCurrencyCode>USD</b:DocumentCurrencyCode>
  <a:DiscrepancyResponse>
    <b:ReferenceID>F001-123</b:ReferenceID>
    <b:ResponseCode>07</b:ResponseCode>
    <b:Description>DEVOLUCION POR ITEM</b:Description>
  </a:DiscrepancyResponse>
  <a:BillingReference>
    <a:InvoiceDocumentReference><b:ID>F001-00000123</b:ID></a:InvoiceDocumentReference>
  </a:BillingReference>
  <a:AccountingSupplierParty>
    <a:Party>
      <a:PartyIdentification><b:ID schemeID="6">20131312955</b:ID></a:PartyIdentification>
      <a:PartyLegalEntity><b:RegistrationName>COMERCIAL ANDINA S.A.C.</b:RegistrationName></a:PartyLegalEntity>
    </a:Party>
  </a:AccountingSupplierParty>
  <a:TaxTotal><b:TaxAmount currencyID="USD">3.60</b:TaxAmount></a:TaxTotal>
  <a:LegalMonetaryTotal>
    <b:LineExtensionAmount currencyID="USD">20.00</b:LineExtensionAmount>
    <b:PayableAmount currencyID="USD">23.60</b:PayableAmount>
  </a:LegalMonetaryTotal>
  <a:CreditNoteLine>
    <b:ID>1</b:ID>
    <b:CreditedQuantity unitCode="NIU">1</b:CreditedQuantity>
    <b:LineExtensionAmount currencyID="USD">20.00</b:LineExtensionAmount>
    <a:Item><b:Description>ACEITE VEGETAL</b:Description></a:Item>
  </a:CreditNoteLine>
</ns0:CreditNote>`

const notaDebitoXML = `<?xml version="1.0" encoding="UTF-8"?>
<DebitNote xmlns="urn:oasis:names:specification:ubl:schema:xsd:DebitNote-2"
           xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
           xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>FD01-12</cbc:ID>
  <cbc:IssueDate>2024-03-25</cbc:IssueDate>
  <cac:DiscrepancyResponse>
    <cbc:ReferenceID>F001-123</cbc:ReferenceID>
    <cbc:ResponseCode>01</cbc:ResponseCode>
    <cbc:Description>INTERESES POR MORA</cbc:Description>
  </cac:DiscrepancyResponse>
  <cac:AccountingSupplierParty>
    <cbc:CustomerAssignedAccountID>20131312955</cbc:CustomerAssignedAccountID>
    <cbc:AdditionalAccountID>6</cbc:AdditionalAccountID>
    <cac:Party>
      <cac:PartyName><cbc:Name>COMERCIAL ANDINA</cbc:Name></cac:PartyName>
    </cac:Party>
  </cac:AccountingSupplierParty>
  <cac:RequestedMonetaryTotal>
    <cbc:LineExtensionAmount currencyID="PEN">10.00</cbc:LineExtensionAmount>
    <cbc:PayableAmount currencyID="PEN">11.80</cbc:PayableAmount>
  </cac:RequestedMonetaryTotal>
  <cac:DebitNoteLine>
    <cbc:ID>1</cbc:ID>
    <cbc:DebitedQuantity unitCode="ZZ">1</cbc:DebitedQuantity>
    <cbc:LineExtensionAmount currencyID="PEN">10.00</cbc:LineExtensionAmount>
    <cac:Item><cbc:Description>INTERESES</cbc:Description></cac:Item>
  </cac:DebitNoteLine>
</DebitNote>`

func newDecoder() *ubl.Decoder {
	return ubl.NewDecoder(logger.Nop())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDecode_Factura(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(facturaXML))
	require.NoError(t, err)

	assert.Equal(t, "Invoice", doc.RootElement)
	assert.Equal(t, "2.1", doc.UBLVersion)
	assert.Equal(t, "01", doc.DocumentType)
	assert.Equal(t, "F001", doc.Serie)
	assert.Equal(t, "123", doc.Numero)
	assert.Equal(t, "F001-123", doc.DocumentNumber())
	assert.Equal(t, "2024-03-15", doc.IssueDate.Format("2006-01-02"))
	require.NotNil(t, doc.DueDate)
	assert.Equal(t, "2024-04-14", doc.DueDate.Format("2006-01-02"))
	assert.Equal(t, "PEN", doc.Currency)

	assert.Equal(t, ubl.Party{DocType: "6", DocNumber: "20131312955", Name: "COMERCIAL ANDINA S.A.C."}, doc.Emitter)
	assert.Equal(t, ubl.Party{DocType: "6", DocNumber: "20100070970", Name: "SUPERMERCADOS PERUANOS S.A."}, doc.Receiver)

	assert.True(t, doc.Base.Equal(dec("100")), "base: %s", doc.Base)
	assert.True(t, doc.Tax.Equal(dec("18")), "tax: %s", doc.Tax)
	assert.True(t, doc.IGV.Equal(dec("18")), "igv: %s", doc.IGV)
	assert.True(t, doc.Total.Equal(dec("118")), "total: %s", doc.Total)
	assert.True(t, doc.Reconciles(ubl.DefaultTolerance))

	assert.Equal(t, []string{"Orden de compra OC-45"}, doc.Notes)
	assert.Equal(t, "qZ3s9Fh2kdl0kPz4XyA1b0c=", doc.SignatureHash)
	assert.Len(t, doc.Fingerprint, 64)

	require.Len(t, doc.Lines, 2)
	l := doc.Lines[0]
	assert.Equal(t, 1, l.LineNumber)
	assert.Equal(t, "ACE-001", l.Code)
	assert.Equal(t, "ACEITE VEGETAL 1 LITRO", l.Description)
	assert.Equal(t, "NIU", l.UnitCode)
	assert.True(t, l.Quantity.Equal(dec("2")))
	assert.True(t, l.UnitValue.Equal(dec("30")))
	assert.True(t, l.UnitPrice.Equal(dec("35.40")))
	assert.True(t, l.BaseAmount.Equal(dec("60")))
	assert.True(t, l.TaxAmount.Equal(dec("10.80")))
	assert.Equal(t, "10", l.IGVAffectationCode)
	assert.Equal(t, "KGM", doc.Lines[1].UnitCode)
	assert.True(t, doc.Lines[1].UnitPrice.IsZero())
}

func TestDecode_BoletaSinSubtotalUsaBaseImponible(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(boletaXML))
	require.NoError(t, err)

	assert.Equal(t, "03", doc.DocumentType)
	assert.Equal(t, "B002", doc.Serie)
	assert.Equal(t, "45", doc.Numero)
	assert.Equal(t, "BODEGA SAN JUAN", doc.Emitter.Name)
	assert.Equal(t, "1", doc.Receiver.DocType)
	assert.Equal(t, "45678912", doc.Receiver.DocNumber)
	require.NotNil(t, doc.DueDate)
	assert.Equal(t, "2024-03-30", doc.DueDate.Format("2006-01-02"))

	assert.True(t, doc.Base.Equal(dec("50")), "base: %s", doc.Base)
	assert.True(t, doc.Tax.Equal(dec("9")))
	assert.True(t, doc.Total.Equal(dec("59")))
	assert.Empty(t, doc.Notes, "la leyenda de monto en letras se descarta aunque no traiga languageLocaleID")
	assert.Empty(t, doc.SignatureHash)
}

func TestDecode_NotaCreditoConPrefijosArbitrarios(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(notaCreditoXML))
	require.NoError(t, err)

	assert.Equal(t, "CreditNote", doc.RootElement)
	assert.Equal(t, "07", doc.DocumentType)
	assert.Equal(t, "FC01", doc.Serie)
	assert.Equal(t, "7", doc.Numero)
	assert.Equal(t, "USD", doc.Currency)
	assert.Equal(t, "F001-00000123", doc.ReferenceDocument)
	assert.Equal(t, "07", doc.NoteReasonCode)
	assert.Equal(t, "DEVOLUCION POR ITEM", doc.NoteReason)
	assert.True(t, doc.Total.Equal(dec("23.60")))
	require.Len(t, doc.Lines, 1)
	assert.True(t, doc.Lines[0].Quantity.Equal(dec("1")))
}

func TestDecode_NotaDebitoSinTaxTotalDerivaImpuesto(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(notaDebitoXML))
	require.NoError(t, err)

	assert.Equal(t, "08", doc.DocumentType)
	assert.Equal(t, ubl.Party{DocType: "6", DocNumber: "20131312955", Name: "COMERCIAL ANDINA"}, doc.Emitter)
	assert.Equal(t, "F001-123", doc.ReferenceDocument)
	assert.Equal(t, "01", doc.NoteReasonCode)
	assert.True(t, doc.Base.Equal(dec("10")))
	assert.True(t, doc.Tax.Equal(dec("1.80")), "tax: %s", doc.Tax)
	assert.True(t, doc.Total.Equal(dec("11.80")))
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "ZZ", doc.Lines[0].UnitCode)
}

func TestDecode_ISO88591(t *testing.T) {
	raw := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<Invoice xmlns=\"urn:oasis:names:specification:ubl:schema:xsd:Invoice-2\"" +
		" xmlns:cac=\"urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2\"" +
		" xmlns:cbc=\"urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2\">" +
		"<cbc:ID>F010-1</cbc:ID><cbc:IssueDate>2024-01-05</cbc:IssueDate>" +
		"<cac:AccountingSupplierParty><cac:Party>" +
		"<cac:PartyIdentification><cbc:ID schemeID=\"6\">20131312955</cbc:ID></cac:PartyIdentification>" +
		"<cac:PartyLegalEntity><cbc:RegistrationName>DISTRIBUIDORA PE\xd1ALOZA E.I.R.L.</cbc:RegistrationName></cac:PartyLegalEntity>" +
		"</cac:Party></cac:AccountingSupplierParty>" +
		"<cac:LegalMonetaryTotal><cbc:PayableAmount>11.80</cbc:PayableAmount></cac:LegalMonetaryTotal>" +
		"</Invoice>"

	doc, err := newDecoder().Decode([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "DISTRIBUIDORA PEÑALOZA E.I.R.L.", doc.Emitter.Name)
	assert.True(t, doc.Total.Equal(dec("11.80")))
	assert.True(t, doc.Base.Equal(dec("11.80")), "sin impuesto ni subtotal la base es el total")
}

// Boleta exonerada con bolsas plásticas: el único impuesto es ICBPER.
const boletaExoneradaICBPERXML = `<?xml version="1.0" encoding="UTF-8"?>
<Invoice xmlns="urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
         xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
         xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cbc:ID>B003-9</cbc:ID>
  <cbc:IssueDate>2024-05-02</cbc:IssueDate>
  <cbc:InvoiceTypeCode>03</cbc:InvoiceTypeCode>
  <cac:AccountingSupplierParty><cac:Party>
    <cac:PartyIdentification><cbc:ID schemeID="6">20131312955</cbc:ID></cac:PartyIdentification>
  </cac:Party></cac:AccountingSupplierParty>
  <cac:TaxTotal>
    <cbc:TaxAmount currencyID="PEN">0.50</cbc:TaxAmount>
    <cac:TaxSubtotal>
      <cbc:TaxableAmount currencyID="PEN">100.00</cbc:TaxableAmount>
      <cbc:TaxAmount currencyID="PEN">0.00</cbc:TaxAmount>
      <cac:TaxCategory><cac:TaxScheme><cbc:ID>9997</cbc:ID><cbc:Name>EXO</cbc:Name></cac:TaxScheme></cac:TaxCategory>
    </cac:TaxSubtotal>
    <cac:TaxSubtotal>
      <cbc:TaxAmount currencyID="PEN">0.50</cbc:TaxAmount>
      <cac:TaxCategory><cac:TaxScheme><cbc:ID>7152</cbc:ID><cbc:Name>ICBPER</cbc:Name></cac:TaxScheme></cac:TaxCategory>
    </cac:TaxSubtotal>
  </cac:TaxTotal>
  <cac:LegalMonetaryTotal>
    <cbc:LineExtensionAmount currencyID="PEN">100.00</cbc:LineExtensionAmount>
    <cbc:PayableAmount currencyID="PEN">100.50</cbc:PayableAmount>
  </cac:LegalMonetaryTotal>
  <cac:InvoiceLine>
    <cbc:ID>1</cbc:ID>
    <cbc:InvoicedQuantity unitCode="NIU">2</cbc:InvoicedQuantity>
    <cbc:LineExtensionAmount currencyID="PEN">100.00</cbc:LineExtensionAmount>
    <cac:TaxTotal>
      <cbc:TaxAmount currencyID="PEN">0.50</cbc:TaxAmount>
      <cac:TaxSubtotal>
        <cbc:TaxAmount currencyID="PEN">0.50</cbc:TaxAmount>
        <cac:TaxCategory><cac:TaxScheme><cbc:ID>7152</cbc:ID></cac:TaxScheme></cac:TaxCategory>
      </cac:TaxSubtotal>
      <cac:TaxSubtotal>
        <cbc:TaxableAmount currencyID="PEN">100.00</cbc:TaxableAmount>
        <cbc:TaxAmount currencyID="PEN">0.00</cbc:TaxAmount>
        <cac:TaxCategory>
          <cbc:TaxExemptionReasonCode>20</cbc:TaxExemptionReasonCode>
          <cac:TaxScheme><cbc:ID>9997</cbc:ID></cac:TaxScheme>
        </cac:TaxCategory>
      </cac:TaxSubtotal>
    </cac:TaxTotal>
    <cac:Item><cbc:Description>LIBROS</cbc:Description></cac:Item>
  </cac:InvoiceLine>
</Invoice>`

func TestDecode_ExoneradaConICBPERNoEsIGV(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(boletaExoneradaICBPERXML))
	require.NoError(t, err)

	assert.True(t, doc.IGV.IsZero(), "igv: %s", doc.IGV)
	assert.True(t, doc.Tax.Equal(dec("0.5")), "tax: %s", doc.Tax)
	assert.True(t, doc.Exonerated.Equal(dec("100")), "exonerado: %s", doc.Exonerated)
	assert.True(t, doc.Base.Equal(dec("100")), "base: %s", doc.Base)
	assert.True(t, doc.Total.Equal(dec("100.50")), "total: %s", doc.Total)

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "20", doc.Lines[0].IGVAffectationCode)
}

func TestDecode_SinDesgloseTodoElImpuestoEsIGV(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(`<Invoice>
  <ID>F009-1</ID><IssueDate>2024-01-10</IssueDate>
  <TaxTotal><TaxAmount>18.00</TaxAmount></TaxTotal>
  <LegalMonetaryTotal><LineExtensionAmount>100.00</LineExtensionAmount><PayableAmount>118.00</PayableAmount></LegalMonetaryTotal>
</Invoice>`))
	require.NoError(t, err)
	assert.True(t, doc.IGV.Equal(dec("18")), "igv: %s", doc.IGV)
}

func TestDecode_Rechazos(t *testing.T) {
	d := newDecoder()

	_, err := d.Decode([]byte(`<?xml version="1.0"?><Despatch><ID>T001-1</ID></Despatch>`))
	assert.ErrorIs(t, err, domain.ErrUnrecognizedDocument)

	_, err = d.Decode([]byte("   "))
	assert.ErrorIs(t, err, domain.ErrUnrecognizedDocument)

	_, err = d.Decode([]byte(`<Invoice><cbc:ID>F001-1</Invoice>`))
	assert.ErrorIs(t, err, ubl.ErrMalformedXML)

	assert.Nil(t, d.Parse([]byte(`no es xml`)))
	assert.Nil(t, d.Parse([]byte(`<CreditNote><IssueDate>2024-01-01</IssueDate></CreditNote>`)), "sin cbc:ID")
	assert.NotNil(t, d.Parse([]byte(facturaXML)))
}

func TestDecode_BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte(boletaXML)...)
	doc, err := newDecoder().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, "B002-45", doc.DocumentNumber())
}

func TestFingerprint_EstableAnteFormaLexica(t *testing.T) {
	a := `<Invoice xmlns="urn:x"><ID attr="1"/></Invoice>`
	b := `<Invoice xmlns='urn:x'><ID attr='1'></ID></Invoice>`
	c := `<Invoice xmlns="urn:x"><ID attr="2"/></Invoice>`

	assert.Equal(t, ubl.Fingerprint([]byte(a)), ubl.Fingerprint([]byte(b)))
	assert.NotEqual(t, ubl.Fingerprint([]byte(a)), ubl.Fingerprint([]byte(c)))
	assert.Len(t, ubl.Fingerprint([]byte("<<no-xml")), 64)
}

func TestToComprobante(t *testing.T) {
	doc, err := newDecoder().Decode([]byte(facturaXML))
	require.NoError(t, err)

	c := doc.ToComprobante()
	assert.Equal(t, "F001-123", c.DocumentNumber())
	assert.Equal(t, "20131312955", c.EmitterRUC)
	assert.Equal(t, "20100070970", c.ReceiverDoc)
	require.Len(t, c.Items, 2)
	assert.True(t, c.Items[0].TotalAmount.Equal(dec("70.80")))
}

func TestIsAmountInWords(t *testing.T) {
	assert.True(t, ubl.IsAmountInWords("SON: CIENTO DIECIOCHO CON 00/100 SOLES"))
	assert.True(t, ubl.IsAmountInWords("son : diez"))
	assert.True(t, ubl.IsAmountInWords("CIEN CON 50/100 DÓLARES AMERICANOS"))
	assert.False(t, ubl.IsAmountInWords("Entrega en almacén central"))
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, ubl.KindXML, ubl.DetectKind([]byte("  \n<?xml version=\"1.0\"?><Invoice/>")))
	assert.Equal(t, ubl.KindXML, ubl.DetectKind(append([]byte{0xEF, 0xBB, 0xBF}, '<')))
	assert.Equal(t, ubl.KindZIP, ubl.DetectKind([]byte("PK\x03\x04resto")))
	assert.Equal(t, ubl.KindZIP, ubl.DetectKind([]byte("PK\x05\x06")))
	assert.Equal(t, ubl.KindUnknown, ubl.DetectKind([]byte("%PDF-1.7")))
	assert.Equal(t, ubl.KindUnknown, ubl.DetectKind(nil))
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractXML(t *testing.T) {
	data := buildZip(t, map[string]string{
		"20131312955-01-F001-123.xml":            facturaXML,
		"__MACOSX/._20131312955-01-F001-123.xml": "basura",
		"leeme.txt":                              "hola",
		"sub/B002-45.XML":                        boletaXML,
	})

	entries, err := ubl.ExtractXML(data, ubl.Limits{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	names := []string{entries[0].Name, entries[1].Name}
	assert.ElementsMatch(t, []string{"20131312955-01-F001-123.xml", "B002-45.XML"}, names)
}

func TestExtractXML_LimiteYArchivoInvalido(t *testing.T) {
	data := buildZip(t, map[string]string{"F001-1.xml": facturaXML})
	_, err := ubl.ExtractXML(data, ubl.Limits{MaxEntryBytes: 100})
	assert.ErrorIs(t, err, ubl.ErrEntryTooLarge)

	_, err = ubl.ExtractXML([]byte("PK\x03\x04corrupto"), ubl.Limits{})
	assert.Error(t, err)
}

func TestExtractXML_LimitesDelArchivo(t *testing.T) {
	relleno := "<Invoice>" + strings.Repeat(" ", 4000) + "</Invoice>"
	files := map[string]string{}
	for i := 0; i < 40; i++ {
		files[fmt.Sprintf("doc-%02d.xml", i)] = relleno
	}
	data := buildZip(t, files)

	entries, err := ubl.ExtractXML(data, ubl.Limits{MaxEntryBytes: 8000, MaxTotalBytes: 40 * 8000, MaxEntries: 40})
	require.NoError(t, err)
	assert.Len(t, entries, 40)

	// cada entrada cabe, pero la suma no
	_, err = ubl.ExtractXML(data, ubl.Limits{MaxEntryBytes: 8000, MaxTotalBytes: 10 * 8000})
	assert.ErrorIs(t, err, ubl.ErrArchiveTooLarge)
	assert.NotErrorIs(t, err, ubl.ErrEntryTooLarge)

	_, err = ubl.ExtractXML(data, ubl.Limits{MaxEntries: 39})
	assert.ErrorIs(t, err, ubl.ErrArchiveTooLarge)

	// las entradas que no son XML no cuentan
	data = buildZip(t, map[string]string{"a.xml": relleno, "leeme.txt": relleno, "__MACOSX/._a.xml": relleno})
	entries, err = ubl.ExtractXML(data, ubl.Limits{MaxTotalBytes: int64(len(relleno)), MaxEntries: 1})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

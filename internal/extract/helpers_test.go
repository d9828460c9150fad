package extract_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"taxrecon/internal/domain"
)

func amt(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func assertClause(t *testing.T, amounts domain.ClauseAmounts, key domain.ClauseKey, want string) {
	t.Helper()
	got := amounts[key]
	if !got.Equal(amt(want)) {
		t.Errorf("clause %s: got %s, want %s", key, got, want)
	}
}

// audit3CBJSON returns a structured Form 3CB export covering every
// audited clause. Expected amounts: c20b=1000.50 (one late deposit),
// c21a=1200, c21d=2500, c21i=800, c22=1500, c43bh=3000, c32=12500.25.
func audit3CBJSON() []byte {
	return []byte(`{
	  "FORM3CB": {
	    "F3CB": {
	      "Form3cdEmpPfSuperannInfo": {
	        "Form3cdSect20b": [
	          {"Amount": "1,000.50", "DueDate": "2023-04-07", "ActualDate": "2023-05-01"},
	          {"Amount": "400.00", "DueDate": "2023-05-07", "ActualDate": "2023-05-05"},
	          {"Amount": "999.00", "DueDate": "2023-06-07"}
	        ]
	      },
	      "Form3cdDebPLExpnditure": [
	        {"ParticularType": "Personal Expenses", "Amount": "1200"},
	        {"ParticularType": "Advertisement", "Amount": "5000"}
	      ],
	      "AmtInadmissibleSec40A3": "2500",
	      "AmtInadmissibleSec40aia": "800",
	      "Form3cdInadm": [
	        {"ParticularType": "SEC23", "Amount4": "1500"},
	        {"ParticularType": "OTHER", "Amount4": "9999"}
	      ],
	      "Form3cdUnpaidStrySec43b": [
	        {"Section": "43Bh", "Amount": "3000"},
	        {"Section": "43Ba", "Amount": "7777"}
	      ],
	      "Form3cdDeprAllw": [
	        {"DepAllowable": "10000"},
	        {"DepAllowable": "2500.25"}
	      ]
	    }
	  }
	}`)
}

// audit3CAXML is the same filing in the tagged 3CA shape, with a
// namespace prefix on every element.
func audit3CAXML() []byte {
	return []byte(`<?xml version="1.0"?>
	<ns:FORM3CA xmlns:ns="http://incometaxindiaefiling.gov.in/F3CA">
	  <ns:F3CA>
	    <ns:Form3cdEmpPfSuperannInfo>
	      <ns:Form3cdSect20b>
	        <ns:Amount>1,000.50</ns:Amount>
	        <ns:DueDate>2023-04-07</ns:DueDate>
	        <ns:ActualDate>2023-05-01</ns:ActualDate>
	      </ns:Form3cdSect20b>
	      <ns:Form3cdSect20b>
	        <ns:Amount>400.00</ns:Amount>
	        <ns:DueDate>2023-05-07</ns:DueDate>
	        <ns:ActualDate>2023-05-05</ns:ActualDate>
	      </ns:Form3cdSect20b>
	    </ns:Form3cdEmpPfSuperannInfo>
	    <ns:Form3cdDebPLExpnditure>
	      <ns:ParticularType>Personal Expenses</ns:ParticularType>
	      <ns:Amount>1200</ns:Amount>
	    </ns:Form3cdDebPLExpnditure>
	    <ns:Form3cdDebPLExpnditure>
	      <ns:ParticularType>Advertisement</ns:ParticularType>
	      <ns:Amount>5000</ns:Amount>
	    </ns:Form3cdDebPLExpnditure>
	    <ns:AmtInadmissibleSec40A3>2500</ns:AmtInadmissibleSec40A3>
	    <ns:AmtInadmissibleSec40aia>800</ns:AmtInadmissibleSec40aia>
	    <ns:Form3cdInadm>
	      <ns:ParticularType>SEC23</ns:ParticularType>
	      <ns:Amount>1500</ns:Amount>
	    </ns:Form3cdInadm>
	    <ns:Form3cdUnpaidStrySec43b>
	      <ns:Section>43Bh</ns:Section>
	      <ns:Amount>3000</ns:Amount>
	    </ns:Form3cdUnpaidStrySec43b>
	    <ns:Form3cdUnpaidStrySec43b>
	      <ns:Section>43Ba</ns:Section>
	      <ns:Amount>7777</ns:Amount>
	    </ns:Form3cdUnpaidStrySec43b>
	    <ns:Form3cdDeprAllw>
	      <ns:DepAllowable>10000</ns:DepAllowable>
	    </ns:Form3cdDeprAllw>
	    <ns:Form3cdDeprAllw>
	      <ns:DepAllowable>2500.25</ns:DepAllowable>
	    </ns:Form3cdDeprAllw>
	  </ns:F3CA>
	</ns:FORM3CA>`)
}

// itr6JSON returns a structured ITR-6 whose amounts line up with
// audit3CBJSON clause for clause.
func itr6JSON() []byte {
	return []byte(`{
	  "ITR": {
	    "ITR6": {
	      "PartA_GEN1": {
	        "OrgFirmInfo": {"AssesseeName": {"SurNameOrOrgName": "Acme Industries"}}
	      },
	      "PartA_OI": {
	        "AmtDisallUs36": {"EmplyeeContrStatutoryFund": "1000.50"},
	        "AmtDisallUs37": {"PersonalExp": "1200"},
	        "AmtDisallUs40A3": "2500",
	        "AmtInadmissibleUs40a": "800",
	        "AmtDisall43B": {"AmtUs43B": {"MSEPayable": "1500"}},
	        "AmtDisallUs43BPyNowAll": {"AmtUs43B": {"MSEPayable": "3000"}}
	      },
	      "ScheduleBP": {
	        "BusinessIncOthThanSpec": {
	          "DepreciationAllowITAct32": {"TotDeprAllowITAct": "12500.25"}
	        }
	      }
	    }
	  }
	}`)
}

// itr3XML is a tagged individual return carrying a subset of the clauses.
func itr3XML() []byte {
	return []byte(`<?xml version="1.0"?>
	<ITRETURN>
	  <ITR3>
	    <PartA_GEN1>
	      <PersonalInfo>
	        <AssesseeName>
	          <SurNameOrOrgName>Sharma</SurNameOrOrgName>
	        </AssesseeName>
	      </PersonalInfo>
	    </PartA_GEN1>
	    <PARTA_OI>
	      <EmplyeeContrStatutoryFund>1000.50</EmplyeeContrStatutoryFund>
	      <AmtDisallUs37>
	        <PersonalExp>1200</PersonalExp>
	      </AmtDisallUs37>
	      <AmtDisallUs40A3>2500</AmtDisallUs40A3>
	      <AmtInadmissibleUs40a>800</AmtInadmissibleUs40a>
	      <AmtDisall43B>
	        <MSEPayable>1500</MSEPayable>
	      </AmtDisall43B>
	      <AmtDisall43BPyNowAll>
	        <MSEPayable>3000</MSEPayable>
	      </AmtDisall43BPyNowAll>
	    </PARTA_OI>
	    <ScheduleBP>
	      <DepreciationAllowITAct32>
	        <TotDeprAllowITAct>12500.25</TotDeprAllowITAct>
	      </DepreciationAllowITAct32>
	    </ScheduleBP>
	  </ITR3>
	</ITRETURN>`)
}

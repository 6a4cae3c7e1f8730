package application

import "vtc-portal/internal/document"

type applicationFields Application

func (a *Application) UnmarshalJSON(data []byte) error {
	var fields applicationFields
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*a = Application(fields)
	a.Extra = extra
	return nil
}

func (a Application) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(applicationFields(a), a.Extra)
}

type staffMemberFields StaffMember

func (m *StaffMember) UnmarshalJSON(data []byte) error {
	var fields staffMemberFields
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*m = StaffMember(fields)
	m.Extra = extra
	return nil
}

func (m StaffMember) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(staffMemberFields(m), m.Extra)
}

type applicationsDocumentFields ApplicationsDocument

func (d *ApplicationsDocument) UnmarshalJSON(data []byte) error {
	fields := applicationsDocumentFields(*d)
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*d = ApplicationsDocument(fields)
	d.Extra = extra
	return nil
}

func (d ApplicationsDocument) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(applicationsDocumentFields(d), d.Extra)
}

type staffDocumentFields StaffDocument

func (d *StaffDocument) UnmarshalJSON(data []byte) error {
	fields := staffDocumentFields(*d)
	extra, err := document.UnmarshalObject(data, &fields)
	if err != nil {
		return err
	}
	*d = StaffDocument(fields)
	d.Extra = extra
	return nil
}

func (d StaffDocument) MarshalJSON() ([]byte, error) {
	return document.MarshalObject(staffDocumentFields(d), d.Extra)
}
